package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/shortlinks/internal/models"
)

const (
	DefaultLookupURL = "https://ipapi.co/%s/json/" // Публичный сервис без ключа.
	DefaultTimeout   = 2 * time.Second

	maxResponseSize = 64 << 10
)

// Locator определяет местоположение по IP.
type Locator interface {
	Locate(ctx context.Context, ip string) string
}

// Options настройки HTTPLocator.
type Options struct {
	LookupURL string        // Шаблон адреса сервиса, %s заменяется на IP.
	Timeout   time.Duration // Ограничение на весь запрос к сервису.
	Client    *http.Client
}

// HTTPLocator обращается к внешнему сервису геолокации.
type HTTPLocator struct {
	lookupURL string
	timeout   time.Duration
	client    *http.Client
	logger    *logrus.Entry
}

// lookupResponse ответ сервиса геолокации, все поля необязательны.
type lookupResponse struct {
	City        string `json:"city"`
	CountryName string `json:"country_name"`
	Country     string `json:"country"`
	Error       bool   `json:"error"`
}

func NewHTTPLocator(logger *logrus.Logger, opts ...func(*Options)) *HTTPLocator {
	options := Options{
		LookupURL: DefaultLookupURL,
		Timeout:   DefaultTimeout,
		Client:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &HTTPLocator{
		lookupURL: options.LookupURL,
		timeout:   options.Timeout,
		client:    options.Client,
		logger:    logger.WithField("module", "geo/http"),
	}
}

func (l *HTTPLocator) Locate(ctx context.Context, ip string) string {
	addr, location, ok := classify(ip)
	if !ok {
		return location
	}

	location, err := l.lookup(ctx, addr)
	if err != nil {
		l.logger.WithError(err).Debugf("geolocation lookup for %s failed", ip)
		return models.LocationUnknown
	}
	return location
}

func (l *HTTPLocator) lookup(ctx context.Context, addr netip.Addr) (string, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(lookupCtx, http.MethodGet, l.requestURL(addr), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out lookupResponse
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Error {
		return "", fmt.Errorf("lookup service refused %s", addr)
	}
	return out.location(), nil
}

func (l *HTTPLocator) requestURL(addr netip.Addr) string {
	ip := url.PathEscape(addr.String())
	if strings.Contains(l.lookupURL, "%s") {
		return fmt.Sprintf(l.lookupURL, ip)
	}
	return strings.TrimRight(l.lookupURL, "/") + "/" + ip
}

func (r *lookupResponse) location() string {
	country := strings.TrimSpace(r.CountryName)
	if country == "" {
		country = strings.TrimSpace(r.Country)
	}
	if country == "" {
		return models.LocationUnknown
	}
	if city := strings.TrimSpace(r.City); city != "" {
		return city + ", " + country
	}
	return country
}

// classify отсекает адреса, для которых внешний запрос не нужен. Если ok == false,
// location уже содержит итоговое значение.
func classify(ip string) (addr netip.Addr, location string, ok bool) { //nolint:nonamedreturns
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return netip.Addr{}, models.LocationUnknown, false
	}
	parsed, err := netip.ParseAddr(ip)
	if err != nil {
		return netip.Addr{}, models.LocationUnknown, false
	}
	parsed = parsed.Unmap()
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified() {
		return parsed, models.LocationLocal, false
	}
	return parsed, "", true
}
