package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/shortlinks/internal/services"
)

// ExpiryLayout формат срока действия в ответе на создание ссылки.
const ExpiryLayout = "2006-01-02T15:04:05Z"

// hostnameRegex имя хоста в соответствии с `RFC 1123`, допускается имя из одной метки.
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9](-?[a-zA-Z0-9])*\.)*([a-zA-Z0-9](-?[a-zA-Z0-9])*)$`)

type ShortURLController struct {
	urlService ShortURLService
	baseURL    *url.URL
}

func NewShortURLController(urlService ShortURLService, baseURL *url.URL) *ShortURLController {
	return &ShortURLController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

type createRequest struct {
	URL       string `json:"url" binding:"required"`
	Validity  *int   `json:"validity"`
	Shortcode string `json:"shortcode"`
}

type createResponse struct {
	ShortLink string `json:"shortLink"`
	Expiry    string `json:"expiry"`
}

type clickLog struct {
	Timestamp string `json:"timestamp"`
	Referrer  string `json:"referrer"`
	Location  string `json:"location"`
}

type statsResponse struct {
	TotalClicks int        `json:"total_clicks"`
	OriginalURL string     `json:"original_url"`
	CreatedAt   string     `json:"created_at"`
	Expiry      string     `json:"expiry"`
	ClickLogs   []clickLog `json:"click_logs"`
}

// Create обрабатывает POST /shorturls.
//
// Тело запроса: {"url": "...", "validity": 30, "shortcode": "custom"}, обязателен только url.
// Ответ 201: {"shortLink": "...", "expiry": "2006-01-02T15:04:05Z"}.
func (s *ShortURLController) Create(ctx *gin.Context) {
	var req createRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		abortWithValidation(ctx, fmt.Errorf("invalid request body: %w", bindErr))
		return
	}

	parsedURL, parseErr := validateURL(req.URL)
	if parseErr != nil {
		abortWithValidation(ctx, parseErr)
		return
	}

	params := services.CreateParams{
		URL:       parsedURL.String(),
		Shortcode: req.Shortcode,
	}
	if req.Validity != nil {
		if *req.Validity < 1 {
			abortWithValidation(ctx, errors.New("validity must be a positive number of minutes"))
			return
		}
		if int64(*req.Validity) > services.MaxValidityMinutes {
			abortWithValidation(ctx, fmt.Errorf("validity must not exceed %d minutes", services.MaxValidityMinutes))
			return
		}
		params.Validity = *req.Validity
	}

	sURL, createErr := s.urlService.Create(ctx.Request.Context(), params)
	if createErr != nil {
		abortWithError(ctx, createErr)
		return
	}

	ctx.JSON(http.StatusCreated, createResponse{
		ShortLink: shortLink(s.baseURL, ctx.Request, sURL.Code()),
		Expiry:    sURL.Expiry.UTC().Format(ExpiryLayout),
	})
}

// Redirect обрабатывает GET /:code. Каждый успешный переход записывается в статистику.
func (s *ShortURLController) Redirect(ctx *gin.Context) {
	originalURL, err := s.urlService.Resolve(ctx.Request.Context(), ctx.Param("code"), services.Visit{
		Referrer: ctx.Request.Referer(),
		ClientIP: ctx.ClientIP(),
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusTemporaryRedirect, originalURL)
}

// Stats обрабатывает GET /shorturls/:code.
func (s *ShortURLController) Stats(ctx *gin.Context) {
	stats, err := s.urlService.Stats(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	logs := make([]clickLog, 0, len(stats.Clicks))
	for _, c := range stats.Clicks {
		logs = append(logs, clickLog{
			Timestamp: c.ClickedAt.UTC().Format(time.RFC3339Nano),
			Referrer:  c.Referrer,
			Location:  c.Location,
		})
	}

	ctx.JSON(http.StatusOK, statsResponse{
		TotalClicks: stats.TotalClicks,
		OriginalURL: stats.OriginalURL,
		CreatedAt:   stats.CreatedAt.UTC().Format(time.RFC3339Nano),
		Expiry:      stats.Expiry.UTC().Format(time.RFC3339Nano),
		ClickLogs:   logs,
	})
}

// validateURL проверяет, является ли строка корректным URL.
func validateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)

	if err != nil {
		return nil, errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("URL must have http or https scheme")
	}

	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	hostname := parsedURL.Hostname()
	if _, addrErr := netip.ParseAddr(hostname); addrErr == nil {
		return parsedURL, nil
	}
	if !hostnameRegex.MatchString(hostname) {
		return nil, errors.New("invalid hostname")
	}

	return parsedURL, nil
}
