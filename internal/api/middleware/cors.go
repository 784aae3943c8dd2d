package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	allowedHeaders = []string{"Content-Type"}
)

// ConfigCORS answers cross-origin requests for the given origins. "*"
// allows every origin.
func ConfigCORS(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:              allowedMethods,
		AllowHeaders:              allowedHeaders,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusNoContent,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}

	return cors.New(conf)
}

// NoStore stamps every response with the CORS and caching headers, including
// responses to requests that carry no Origin header and so are skipped by
// ConfigCORS.
func NoStore(origins []string) gin.HandlerFunc {
	origin := "*"
	if len(origins) > 0 && !slices.Contains(origins, "*") {
		origin = origins[0]
	}
	methods := strings.Join(allowedMethods, ",")
	headers := strings.Join(allowedHeaders, ",")

	return func(ctx *gin.Context) {
		h := ctx.Writer.Header()
		h.Set("Cache-Control", "no-store")
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)
		ctx.Next()
	}
}

// Preflight ends every OPTIONS request with an empty 204 before routing.
func Preflight() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
