package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"
)

type LinkMock struct {
	mock.Mock
}

func (l *LinkMock) Create(ctx context.Context, params services.CreateParams) (*models.ShortURL, error) {
	args := l.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortURL), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) Resolve(ctx context.Context, code string, visit services.Visit) (string, error) {
	args := l.Called(ctx, code, visit)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (l *LinkMock) Stats(ctx context.Context, code string) (*services.Stats, error) {
	args := l.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*services.Stats), args.Error(1) //nolint:wrapcheck,errcheck
}

type PingMock struct {
	mock.Mock
}

func (p *PingMock) CheckConnection(ctx context.Context) error {
	args := p.Called(ctx)
	return args.Error(0) //nolint:wrapcheck
}
