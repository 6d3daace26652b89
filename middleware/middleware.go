package middleware

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"pacearena-api/utils"
)

// ErrorHandler turns errors attached with c.Error into a 500 unless the
// handler already wrote a response or chose its own status.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), c.Errors.String())
		if !c.Writer.Written() && c.Writer.Status() == http.StatusOK {
			utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		}
	}
}

// RateLimiter keeps one token bucket per client.
type RateLimiter struct {
	perMinute int
	limit     rate.Limit
	burst     int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
	}
}

// Allow takes a token for key and reports whether the request may proceed
// and how many tokens remain.
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	rl.mu.Unlock()

	if !cl.limiter.Allow() {
		return false, 0
	}
	return true, max(int(cl.limiter.Tokens()), 0)
}

// Sweep drops clients idle for longer than maxIdle.
func (rl *RateLimiter) Sweep(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for key, cl := range rl.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining := rl.Allow(c.ClientIP())
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Error:   "Rate limit exceeded",
				Message: fmt.Sprintf("Too many requests. Limit: %d requests per minute", rl.perMinute),
				Code:    http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}

// RateLimit limits each client IP to perMinute requests with the given burst.
// Idle clients are swept every ten minutes until ctx is done.
func RateLimit(ctx context.Context, perMinute, burst int) gin.HandlerFunc {
	rl := NewRateLimiter(perMinute, burst)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Sweep(10 * time.Minute)
			case <-ctx.Done():
				return
			}
		}
	}()

	return rl.Middleware()
}

// ValidateJSON rejects request bodies that are neither JSON nor a multipart
// upload. Bodyless requests such as like toggles pass through.
func ValidateJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodDelete, http.MethodOptions, http.MethodHead:
			c.Next()
			return
		}
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		switch mediaType {
		case "application/json", "multipart/form-data":
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{
				Error:   "Invalid content type",
				Message: "Content-Type must be application/json",
				Code:    http.StatusBadRequest,
			})
		}
	}
}

// RequestLogger logs one line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		user := c.GetString(ContextUserID)
		if user == "" {
			user = "-"
		}
		log.Printf("[%s] %s %s %d %v user=%s",
			c.ClientIP(), c.Request.Method, path, c.Writer.Status(), time.Since(start), user)
	}
}

var securityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range securityHeaders {
			c.Header(k, v)
		}
		c.Next()
	}
}
