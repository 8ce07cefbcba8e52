package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OriginPolicy decides which browser origins may call the API.
type OriginPolicy struct {
	allowAll bool
	allowed  map[string]struct{}
}

// AllowAllOrigins returns a policy that accepts any origin.
func AllowAllOrigins() *OriginPolicy {
	return &OriginPolicy{allowAll: true}
}

// NewOriginPolicy returns a policy accepting the listed origins. Matching
// ignores a leading "www." on the host, so listing https://example.com also
// admits https://www.example.com and the reverse.
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if key, ok := originKey(o); ok {
			p.allowed[key] = struct{}{}
		}
	}
	return p
}

// Allowed reports whether origin may make cross-origin requests.
// An empty origin (same-origin or non-browser client) is always allowed.
func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" || p.allowAll {
		return true
	}
	key, ok := originKey(origin)
	if !ok {
		return false
	}
	_, ok = p.allowed[key]
	return ok
}

func originKey(origin string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	return strings.ToLower(u.Scheme) + "://" + host, true
}

// CORS rejects disallowed origins with 403 and emits CORS headers for the rest.
func CORS(policy *OriginPolicy) []gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:              []string{"Origin", "Content-Type", "Authorization"},
		OptionsResponseStatusCode: http.StatusOK,
		MaxAge:                    12 * time.Hour,
	}
	if policy.allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOriginFunc = policy.Allowed
		cfg.AllowCredentials = true
	}

	reject := func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !policy.Allowed(origin) {
			zap.L().Warn("rejected cross-origin request",
				zap.String("origin", origin),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CORS policy violation"})
			return
		}
		c.Next()
	}
	return []gin.HandlerFunc{reject, cors.New(cfg)}
}
