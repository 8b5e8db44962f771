package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// shortLink собирает абсолютную короткую ссылку. Если базовый адрес не задан,
// используется схема и хост запроса.
func shortLink(baseURL *url.URL, r *http.Request, code string) string {
	if baseURL != nil {
		return strings.TrimRight(baseURL.String(), "/") + "/" + code
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/" + code
}
