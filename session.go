// session.go - visitor identity and privacy-conscious request logging
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaibhavsidana/vaibhav-dev/internal/observability"
)

const (
	visitorCookie = "visitor_id"
	visitorKey    = "visitor"
	requestIDHeader  = "X-Request-ID"
)

// ipHasher hashes client IPs with a per-process salt so logs never carry a
// raw address but repeat visits still correlate within one run.
type ipHasher struct {
	salt string
}

func newIPHasher() (*ipHasher, error) {
	salt, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &ipHasher{salt: salt}, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Hash IP address for privacy compliance (consistent per IP)
func (h *ipHasher) hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// visitorMiddleware makes sure every request carries a visitor id cookie.
// The id only selects the in-memory form state for this visitor.
func visitorMiddleware(secure bool, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if _, perr := uuid.Parse(id); err != nil || perr != nil {
			id = uuid.NewString()
		}
		// refresh on every request so the cookie lives as long as the form state
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(visitorCookie, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(visitorKey, id)
		c.Next()
	}
}

func visitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}

// requestLogger tags each request with an id and logs it once it finishes.
func requestLogger(logger *slog.Logger, hasher *ipHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), reqID))

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/favicon") {
			return
		}
		observability.FromContext(c.Request.Context(), logger).Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", hasher.hash(c.ClientIP()),
		)
	}
}
