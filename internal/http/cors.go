package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns nil when CORS is disabled or no origin survives parsing.
// tokenHeader is both accepted on requests and exposed on responses so browser
// clients can read the token returned by POST /login.
func createCORSMiddleware(enabled bool, allowOriginsStr, tokenHeader string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("cors enabled but no origins configured, cors will not be applied")
		return nil
	}

	logger.Info("cors enabled", slog.Any("origins", origins))

	allowHeaders := []string{"Content-Type"}
	exposeHeaders := []string{"X-Request-Id"}
	if tokenHeader != "" {
		allowHeaders = appendHeader(allowHeaders, tokenHeader)
		exposeHeaders = appendHeader(exposeHeaders, tokenHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    exposeHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func appendHeader(headers []string, header string) []string {
	canonical := http.CanonicalHeaderKey(header)
	if slices.Contains(headers, canonical) {
		return headers
	}
	return append(headers, canonical)
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(originsStr string) []string {
	if strings.TrimSpace(originsStr) == "" {
		return nil
	}

	var origins []string
	for part := range strings.SplitSeq(originsStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
