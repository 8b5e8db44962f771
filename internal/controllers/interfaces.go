package controllers

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/store.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

type ShortURLService interface {
	// Create создает короткую ссылку и назначает ей код.
	Create(ctx context.Context, params services.CreateParams) (*models.ShortURL, error)
	// Resolve возвращает исходный адрес и записывает переход.
	Resolve(ctx context.Context, code string, visit services.Visit) (string, error)
	Stats(ctx context.Context, code string) (*services.Stats, error)
}
