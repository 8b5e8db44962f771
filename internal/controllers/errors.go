package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/shortlinks/internal/services"
)

// Коды ошибок API.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidShortcode = "INVALID_SHORTCODE"
	CodeShortcodeTaken   = "SHORTCODE_TAKEN"
	CodeNotFound         = "NOT_FOUND"
	CodeExpired          = "EXPIRED"
	CodeAllocationFailed = "CODE_ALLOCATION_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// apiError сопоставление ошибки сервиса с ответом API.
type apiError struct {
	target  error
	status  int
	code    string
	message string
}

var apiErrors = []apiError{
	{services.ErrInvalidValidity, http.StatusUnprocessableEntity, CodeValidation, "validity is out of range"},
	{services.ErrInvalidShortcode, http.StatusUnprocessableEntity, CodeInvalidShortcode, "shortcode must be 4-32 characters of [0-9A-Za-z_-] and not a reserved path"},
	{services.ErrShortcodeTaken, http.StatusConflict, CodeShortcodeTaken, "shortcode is already in use"},
	{services.ErrRecordNotFound, http.StatusNotFound, CodeNotFound, "short link not found"},
	{services.ErrExpired, http.StatusGone, CodeExpired, "short link has expired"},
	{services.ErrCodeAllocationExhausted, http.StatusInternalServerError, CodeAllocationFailed, "could not allocate a unique shortcode"},
}

// abortWithError отвечает клиенту ошибкой, соответствующей err. Неизвестные ошибки
// превращаются в INTERNAL_ERROR, подробности попадают только в журнал.
func abortWithError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	for _, e := range apiErrors {
		if errors.Is(err, e.target) {
			ctx.AbortWithStatusJSON(e.status, ErrorResponse{Error: e.code, Message: e.message})
			return
		}
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeInternal,
		Message: "internal server error",
	})
}

func abortWithValidation(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   CodeValidation,
		Message: err.Error(),
	})
}
