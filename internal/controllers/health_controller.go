package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController проверки работоспособности сервиса.
type HealthController struct {
	conn ConnectionChecker // Проверяет соединение с базой данных
	now  func() time.Time
}

// NewHealthController создает HealthController. conn может быть nil, тогда /ping
// всегда отвечает ошибкой.
func NewHealthController(conn ConnectionChecker) *HealthController {
	return &HealthController{conn: conn, now: time.Now}
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Healthz обрабатывает GET /healthz. Хранилище не проверяется.
func (c *HealthController) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Time:   c.now().UTC().Format(time.RFC3339Nano),
	})
}

// Ping обрабатывает GET /ping.
// Проверяет соединение с базой данных.
//
// В случае успеха возвращает:
//   - HTTP 200 OK с телом "pong"
//
// В случае ошибки возвращает:
//   - HTTP 500 Internal Server Error
func (c *HealthController) Ping(ctx *gin.Context) {
	if c.conn == nil {
		_ = ctx.Error(errors.New("ping error: no connection checker"))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := c.conn.CheckConnection(pingCtx); err != nil {
		_ = ctx.Error(fmt.Errorf("ping error: %w", err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.String(http.StatusOK, "pong")
}
