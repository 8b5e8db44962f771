package middlewares

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipWriter обертка над gin.ResponseWriter для сжатия ответов в формате gzip.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	g.Header().Del("Content-Length")
	return g.writer.Write(data) //nolint:wrapcheck
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

// GzipMiddleware сжимает ответы для клиентов с Accept-Encoding: gzip и распаковывает
// тела POST, PUT, PATCH запросов с Content-Encoding: gzip.
func GzipMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !readGzip(ctx) {
			return
		}
		if !strings.Contains(ctx.GetHeader("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}
		writeGzip(ctx)
	}
}

func writeGzip(ctx *gin.Context) {
	ctx.Header("Content-Encoding", "gzip")
	ctx.Header("Vary", "Accept-Encoding")

	gzw := gzip.NewWriter(ctx.Writer)
	defer func() {
		if closeErr := gzw.Close(); closeErr != nil {
			_ = ctx.Error(fmt.Errorf("close gzip writer: %w", closeErr))
		}
	}()

	ctx.Writer = &gzipWriter{
		ResponseWriter: ctx.Writer,
		writer:         gzw,
	}
	ctx.Next()
}

// readGzip подменяет тело сжатого запроса на распаковывающий reader.
// Возвращает false, если запрос прерван.
func readGzip(ctx *gin.Context) bool {
	if !slices.Contains([]string{http.MethodPost, http.MethodPut, http.MethodPatch}, ctx.Request.Method) {
		return true
	}
	if !strings.Contains(ctx.GetHeader("Content-Encoding"), "gzip") {
		return true
	}

	gzReader, gzErr := gzip.NewReader(ctx.Request.Body)
	if gzErr != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", gzErr))
		ctx.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	ctx.Request.Body = gzReader
	ctx.Request.Header.Del("Content-Encoding")
	return true
}
