package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const devOrigin = "http://localhost:5173"

// CORSMiddleware allows the local frontend dev server plus every origin in
// the comma-separated origins list.
func CORSMiddleware(origins string) gin.HandlerFunc {
	allowed := []string{devOrigin}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" && o != devOrigin {
			allowed = append(allowed, o)
		}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowed
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.AddAllowHeaders("Accept", "Authorization", RequestIDHeader)
	cfg.AddExposeHeaders(RequestIDHeader)
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
