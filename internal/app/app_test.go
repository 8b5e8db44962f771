package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/shortlinks/internal/config"
)

func newTestApp(t *testing.T, geoURL string) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	a, err := New(config.Config{
		ServerAddress:   "127.0.0.1:0",
		BaseURL:         &url.URL{Scheme: "http", Host: "sho.rt"},
		SQLitePath:      filepath.Join(t.TempDir(), "app.db"),
		DefaultValidity: 30 * time.Minute,
		GeoLookupURL:    geoURL,
		GeoTimeout:      time.Second,
		GeoCacheTTL:     time.Hour,
		Logger:          logger,
	})
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func TestApp_CreateRedirectStats(t *testing.T) {
	var geoCalls atomic.Int32
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geoCalls.Add(1)
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{"city":"Mountain View","country_name":"United States"}`))
	}))
	defer geoSrv.Close()

	a := newTestApp(t, geoSrv.URL+"/%s/json/")
	h := a.Handler()

	req := httptest.NewRequest(http.MethodPost, "/shorturls", bytes.NewBufferString(`{"url":"https://example.com/a"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ShortLink string `json:"shortLink"`
		Expiry    string `json:"expiry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "http://sho.rt/1", created.ShortLink)
	code := strings.TrimPrefix(created.ShortLink, "http://sho.rt/")

	visits := []struct {
		remoteAddr string
		referer    string
	}{
		{remoteAddr: "8.8.8.8:1234", referer: "https://news.example.org"},
		{remoteAddr: "8.8.8.8:1235"},
		{remoteAddr: "127.0.0.1:1236"},
	}
	for _, v := range visits {
		r := httptest.NewRequest(http.MethodGet, "/"+code, nil)
		r.RemoteAddr = v.remoteAddr
		if v.referer != "" {
			r.Header.Set("Referer", v.referer)
		}
		rw := httptest.NewRecorder()
		h.ServeHTTP(rw, r)
		require.Equal(t, http.StatusTemporaryRedirect, rw.Code)
		assert.Equal(t, "https://example.com/a", rw.Header().Get("Location"))
	}
	assert.Equal(t, int32(1), geoCalls.Load(), "second lookup is served from cache")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shorturls/"+code, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalClicks int    `json:"total_clicks"`
		OriginalURL string `json:"original_url"`
		ClickLogs   []struct {
			Referrer string `json:"referrer"`
			Location string `json:"location"`
		} `json:"click_logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalClicks)
	assert.Equal(t, "https://example.com/a", stats.OriginalURL)
	require.Len(t, stats.ClickLogs, 3)
	assert.Equal(t, "Local", stats.ClickLogs[0].Location)
	assert.Equal(t, "Mountain View, United States", stats.ClickLogs[1].Location)
	assert.Equal(t, "https://news.example.org", stats.ClickLogs[2].Referrer)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_ReservedAndOversizedRequests(t *testing.T) {
	a := newTestApp(t, "")
	h := a.Handler()

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/shorturls", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	for _, code := range []string{"ping", "healthz", "shorturls"} {
		w := post(`{"url":"https://example.com/a","shortcode":"` + code + `"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, code)
		assert.Contains(t, w.Body.String(), `"INVALID_SHORTCODE"`, code)
	}

	w := post(`{"url":"https://example.com/x","validity":200000000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ShortLink string `json:"shortLink"`
		Expiry    string `json:"expiry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	expiry, err := time.Parse(time.RFC3339, created.Expiry)
	require.NoError(t, err)
	assert.True(t, expiry.After(time.Now().AddDate(300, 0, 0)))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(created.ShortLink, "http://sho.rt"), nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rw.Code)

	w = post(`{"url":"https://example.com/x","validity":200000000000000}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"VALIDATION_ERROR"`)

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", rw.Body.String())
}

func TestApp_Serve(t *testing.T) {
	a := newTestApp(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server did not stop")
	}
}

func TestApp_InvalidStorage(t *testing.T) {
	_, err := New(config.Config{Logger: logrus.New()})
	require.Error(t, err)
}
