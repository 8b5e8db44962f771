package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

const (
	// DefaultValidity срок жизни ссылки, если клиент его не указал.
	DefaultValidity = 30 * time.Minute
	// MaxValidityMinutes наибольший срок жизни в минутах, который помещается в time.Duration.
	MaxValidityMinutes = math.MaxInt64 / int64(time.Minute)
)

// LinkOptions настройки LinkService.
type LinkOptions struct {
	DefaultValidity time.Duration
	Clock           func() time.Time
}

// CreateParams параметры создания короткой ссылки.
type CreateParams struct {
	URL       string
	Validity  int    // В минутах, значение <= 0 означает срок по умолчанию.
	Shortcode string // Пустая строка - код будет сгенерирован.
}

// Stats статистика переходов по ссылке.
type Stats struct {
	TotalClicks int
	OriginalURL string
	CreatedAt   time.Time
	Expiry      time.Time
	Clicks      []models.Click // Последние первыми.
}

// LinkService создание ссылок, переходы и статистика.
type LinkService struct {
	urlRepo         repositories.URLRepository
	clickRepo       repositories.ClickRepository
	allocator       *CodeAllocator
	recorder        *ClickRecorder
	defaultValidity time.Duration
	now             func() time.Time
	logger          *logrus.Entry
}

func NewLinkService(
	urlRepo repositories.URLRepository,
	clickRepo repositories.ClickRepository,
	locator Locator,
	logger *logrus.Logger,
	opts ...func(*LinkOptions),
) *LinkService {
	options := LinkOptions{
		DefaultValidity: DefaultValidity,
		Clock:           time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.DefaultValidity <= 0 {
		options.DefaultValidity = DefaultValidity
	}

	return &LinkService{
		urlRepo:         urlRepo,
		clickRepo:       clickRepo,
		allocator:       NewCodeAllocator(urlRepo, options.Clock, logger),
		recorder:        NewClickRecorder(clickRepo, locator, options.Clock),
		defaultValidity: options.DefaultValidity,
		now:             options.Clock,
		logger:          logger.WithField("module", "services/link"),
	}
}

// Create сохраняет ссылку и присваивает ей код.
func (s *LinkService) Create(ctx context.Context, params CreateParams) (*models.ShortURL, error) {
	validity := s.defaultValidity
	if int64(params.Validity) > MaxValidityMinutes {
		return nil, errors.Wrapf(ErrInvalidValidity, "validity %d exceeds %d minutes", params.Validity, MaxValidityMinutes)
	}
	if params.Validity > 0 {
		validity = time.Duration(params.Validity) * time.Minute
	}

	createdAt := s.now().UTC()
	sURL := models.ShortURL{
		OriginalURL: strings.TrimSpace(params.URL),
		CreatedAt:   createdAt,
		Expiry:      createdAt.Add(validity),
	}

	code, err := s.allocator.Allocate(ctx, &sURL, params.Shortcode)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf("short url %s created for %s", code, sURL.OriginalURL)
	return &sURL, nil
}

// Resolve возвращает исходный адрес и записывает переход.
func (s *LinkService) Resolve(ctx context.Context, code string, visit Visit) (string, error) {
	sURL, err := s.get(ctx, code)
	if err != nil {
		return "", err
	}
	if sURL.IsExpired(s.now()) {
		return "", errors.Wrapf(ErrExpired, "shortcode %s expired at %s", code, sURL.Expiry.Format(time.RFC3339))
	}
	if recErr := s.recorder.Record(ctx, code, visit); recErr != nil {
		return "", recErr
	}
	return sURL.OriginalURL, nil
}

// Stats возвращает статистику переходов. Для истекших ссылок статистика тоже доступна.
func (s *LinkService) Stats(ctx context.Context, code string) (*Stats, error) {
	sURL, err := s.get(ctx, code)
	if err != nil {
		return nil, err
	}
	clicks, err := s.clickRepo.ListByShortcode(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknown, "list clicks for %s: %s", code, err.Error())
	}
	return &Stats{
		TotalClicks: len(clicks),
		OriginalURL: sURL.OriginalURL,
		CreatedAt:   sURL.CreatedAt.UTC(),
		Expiry:      sURL.Expiry.UTC(),
		Clicks:      clicks,
	}, nil
}

func (s *LinkService) get(ctx context.Context, code string) (*models.ShortURL, error) {
	sURL, err := s.urlRepo.GetByShortcode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "shortcode %s not found", code)
		}
		return nil, errors.Wrapf(ErrUnknown, "get shortcode %s: %s", code, err.Error())
	}
	return sURL, nil
}
