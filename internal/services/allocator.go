package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

// MaxFallbackAttempts сколько раз пробуем код с суффиксом, если сгенерированный код занят.
const MaxFallbackAttempts = 3

var shortcodeRegex = regexp.MustCompile(`^[0-9A-Za-z_-]{4,32}$`)

// reservedShortcodes совпадают со статическими маршрутами сервиса, переход по ним невозможен.
var reservedShortcodes = map[string]struct{}{
	"ping":      {},
	"healthz":   {},
	"shorturls": {},
}

// ValidateShortcode проверяет код, заданный клиентом.
func ValidateShortcode(code string) error {
	if !shortcodeRegex.MatchString(code) {
		return errors.Wrapf(ErrInvalidShortcode, "shortcode %q must match %s", code, shortcodeRegex)
	}
	if _, ok := reservedShortcodes[code]; ok {
		return errors.Wrapf(ErrInvalidShortcode, "shortcode %q is reserved", code)
	}
	return nil
}

// CodeAllocator выдает уникальные коды коротких ссылок.
type CodeAllocator struct {
	urlRepo repositories.URLRepository
	now     func() time.Time
	logger  *logrus.Entry
}

func NewCodeAllocator(urlRepo repositories.URLRepository, now func() time.Time, logger *logrus.Logger) *CodeAllocator {
	return &CodeAllocator{
		urlRepo: urlRepo,
		now:     now,
		logger:  logger.WithField("module", "services/allocator"),
	}
}

// Allocate сохраняет sURL и присваивает ему код. Если requested не пуст, используется он,
// иначе код вычисляется из идентификатора строки в base62.
func (a *CodeAllocator) Allocate(ctx context.Context, sURL *models.ShortURL, requested string) (string, error) {
	if requested != "" {
		return a.allocateRequested(ctx, sURL, requested)
	}
	return a.allocateGenerated(ctx, sURL)
}

func (a *CodeAllocator) allocateRequested(ctx context.Context, sURL *models.ShortURL, requested string) (string, error) {
	if err := ValidateShortcode(requested); err != nil {
		return "", err
	}

	code := requested
	sURL.Shortcode = &code
	if err := a.urlRepo.Create(ctx, sURL); err != nil {
		sURL.Shortcode = nil
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return "", errors.Wrapf(ErrShortcodeTaken, "shortcode %s", requested)
		}
		return "", errors.Wrapf(ErrUnknown, "create short url: %s", err.Error())
	}
	return code, nil
}

func (a *CodeAllocator) allocateGenerated(ctx context.Context, sURL *models.ShortURL) (string, error) {
	var code string

	err := a.urlRepo.Transaction(ctx, func(tx repositories.URLRepository) error {
		sURL.Shortcode = nil
		if err := tx.Create(ctx, sURL); err != nil {
			return errors.Wrapf(ErrUnknown, "create short url: %s", err.Error())
		}

		generated := EncodeBase62(uint64(sURL.ID))
		setErr := tx.SetShortcode(ctx, sURL.ID, generated)
		if setErr == nil {
			code = generated
			return nil
		}
		if !errors.Is(setErr, repositories.ErrDuplicateKey) {
			return errors.Wrapf(ErrUnknown, "set shortcode: %s", setErr.Error())
		}

		// Сгенерированный код уже занят кодом, заданным клиентом.
		for attempt := range MaxFallbackAttempts {
			candidate := fallbackCode(generated, a.now(), attempt)
			a.logger.Warnf("shortcode %s is taken, trying %s", generated, candidate)

			setErr = tx.SetShortcode(ctx, sURL.ID, candidate)
			if setErr == nil {
				code = candidate
				return nil
			}
			if !errors.Is(setErr, repositories.ErrDuplicateKey) {
				return errors.Wrapf(ErrUnknown, "set fallback shortcode: %s", setErr.Error())
			}
		}
		return errors.Wrapf(ErrCodeAllocationExhausted, "id %d after %d attempts", sURL.ID, MaxFallbackAttempts)
	})
	if err != nil {
		sURL.ID = 0
		if errors.Is(err, ErrCodeAllocationExhausted) {
			a.logger.WithError(err).Error("failed to allocate shortcode")
			return "", err
		}
		if errors.Is(err, ErrUnknown) {
			return "", err
		}
		return "", errors.Wrapf(ErrUnknown, "allocate shortcode: %s", err.Error())
	}

	sURL.Shortcode = &code
	return code, nil
}

// fallbackCode добавляет к коду трехзначный суффикс из текущего времени.
func fallbackCode(code string, now time.Time, attempt int) string {
	suffix := (now.Unix() + int64(attempt)) % 1000 //nolint:mnd
	return fmt.Sprintf("%s-%03d", code, suffix)
}
