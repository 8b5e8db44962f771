package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/shortlinks/internal/models"
)

func newTestLocator(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *HTTPLocator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewHTTPLocator(logger, func(o *Options) {
		o.LookupURL = srv.URL + "/%s/json/"
		o.Timeout = timeout
		o.Client = srv.Client()
	})
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestHTTPLocator_Locate(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		handler http.HandlerFunc
		want    string
	}{
		{name: "empty ip", ip: "", want: models.LocationUnknown},
		{name: "garbage ip", ip: "not-an-ip", want: models.LocationUnknown},
		{name: "loopback v4", ip: "127.0.0.1", want: models.LocationLocal},
		{name: "loopback v6", ip: "::1", want: models.LocationLocal},
		{name: "private 10/8", ip: "10.1.2.3", want: models.LocationLocal},
		{name: "private 172.16/12", ip: "172.20.0.1", want: models.LocationLocal},
		{name: "private 192.168/16", ip: "192.168.1.10", want: models.LocationLocal},
		{name: "mapped private", ip: "::ffff:192.168.1.10", want: models.LocationLocal},
		{name: "unique local v6", ip: "fd00::1", want: models.LocationLocal},
		{
			name:    "city and country",
			ip:      "8.8.8.8",
			handler: jsonHandler(`{"city":"Mountain View","country_name":"United States","country":"US"}`),
			want:    "Mountain View, United States",
		},
		{
			name:    "country code only",
			ip:      "8.8.8.8",
			handler: jsonHandler(`{"country":"US"}`),
			want:    "US",
		},
		{
			name:    "city without country",
			ip:      "8.8.8.8",
			handler: jsonHandler(`{"city":"Mountain View"}`),
			want:    models.LocationUnknown,
		},
		{
			name:    "service error flag",
			ip:      "8.8.8.8",
			handler: jsonHandler(`{"error":true,"reason":"RateLimited"}`),
			want:    models.LocationUnknown,
		},
		{
			name:    "broken json",
			ip:      "8.8.8.8",
			handler: jsonHandler(`{"city":`),
			want:    models.LocationUnknown,
		},
		{
			name: "bad status",
			ip:   "8.8.8.8",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			want: models.LocationUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler
			if handler == nil {
				handler = func(_ http.ResponseWriter, _ *http.Request) {
					t.Errorf("lookup must not be called for %q", tt.ip)
				}
			}
			locator := newTestLocator(t, handler, time.Second)
			assert.Equal(t, tt.want, locator.Locate(context.Background(), tt.ip))
		})
	}
}

func TestHTTPLocator_RequestPath(t *testing.T) {
	var gotPath atomic.Value
	locator := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		jsonHandler(`{"country_name":"Germany"}`)(w, r)
	}, time.Second)

	require.Equal(t, "Germany", locator.Locate(context.Background(), "1.1.1.1"))
	require.Equal(t, "/1.1.1.1/json/", gotPath.Load())
}

func TestHTTPLocator_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	locator := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)

	start := time.Now()
	got := locator.Locate(context.Background(), "8.8.8.8")
	require.Equal(t, models.LocationUnknown, got)
	require.Less(t, time.Since(start), time.Second)
}

type countingLocator struct {
	calls  atomic.Int32
	answer string
}

func (c *countingLocator) Locate(_ context.Context, _ string) string {
	c.calls.Add(1)
	return c.answer
}

func TestCachedLocator(t *testing.T) {
	t.Run("caches found location", func(t *testing.T) {
		inner := &countingLocator{answer: "Berlin, Germany"}
		cached := NewCachedLocator(inner, time.Minute)

		for range 3 {
			require.Equal(t, "Berlin, Germany", cached.Locate(t.Context(), "5.5.5.5"))
		}
		require.EqualValues(t, 1, inner.calls.Load())
	})

	t.Run("does not cache unknown", func(t *testing.T) {
		inner := &countingLocator{answer: models.LocationUnknown}
		cached := NewCachedLocator(inner, time.Minute)

		cached.Locate(t.Context(), "5.5.5.5")
		cached.Locate(t.Context(), "5.5.5.5")
		require.EqualValues(t, 2, inner.calls.Load())
	})
}
