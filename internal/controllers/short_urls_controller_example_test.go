package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/fsdevblog/shortlinks/internal/controllers/mocksctrl"
	"github.com/fsdevblog/shortlinks/internal/logs"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"
)

type mockTestHelper struct{}

func (h *mockTestHelper) Errorf(_ string, _ ...interface{}) {}
func (h *mockTestHelper) Fatalf(_ string, _ ...interface{}) {}

// ExampleShortURLController_Create создание ссылки с собственным кодом.
func ExampleShortURLController_Create() {
	h := new(mockTestHelper)
	// Настраиваем тестовое окружение
	ctrl := gomock.NewController(h)
	defer ctrl.Finish()
	mockStore := mocksctrl.NewMockShortURLService(ctrl)

	// Настраиваем роутер
	router, _ := SetupRouter(RouterParams{
		URLService: mockStore,
		BaseURL:    &url.URL{Scheme: "http", Host: "test.com"},
		Logger: logs.MustNew(func(o *logs.LoggerOptions) {
			o.Level = logs.LevelTypeError
		}),
	})

	code := "promo"
	mockStore.EXPECT().
		Create(gomock.Any(), services.CreateParams{URL: "https://example.com", Validity: 60, Shortcode: code}).
		Return(&models.ShortURL{
			OriginalURL: "https://example.com",
			Shortcode:   &code,
			Expiry:      time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC),
		}, nil).Times(1)

	// Готовим запрос
	body := `{"url":"https://example.com","validity":60,"shortcode":"promo"}`
	req := httptest.NewRequest(http.MethodPost, "/shorturls", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Выполняем запрос
	router.ServeHTTP(w, req)

	// Выводим результат
	fmt.Printf("Status: %d\n", w.Code)
	fmt.Printf("Response: %s\n", w.Body.String())

	// Output:
	// Status: 201
	// Response: {"shortLink":"http://test.com/promo","expiry":"2025-01-01T13:00:00Z"}
}

// ExampleHealthController_Ping проверка соединения с хранилищем.
func ExampleHealthController_Ping() {
	ctrl := gomock.NewController(new(mockTestHelper))
	defer ctrl.Finish()
	mockConn := mocksctrl.NewMockConnectionChecker(ctrl)
	mockConn.EXPECT().CheckConnection(gomock.Any()).Return(nil).Times(1)

	router, _ := SetupRouter(RouterParams{
		URLService:  mocksctrl.NewMockShortURLService(ctrl),
		PingService: mockConn,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	fmt.Printf("Status: %d, body: %s\n", w.Code, w.Body.String())

	// Output:
	// Status: 200, body: pong
}
