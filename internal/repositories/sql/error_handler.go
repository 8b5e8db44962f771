package sql

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/repositories"
)

const uniqueViolationCode = "23505"

// ConvertErrorType приводит ошибку драйвера к ошибке уровня репозитория.
func ConvertErrorType(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode:
		return repositories.ErrDuplicateKey
	// sqlite драйвер без cgo-трансляции отдает только текст ошибки.
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	default:
		return repositories.ErrUnknown
	}
}
