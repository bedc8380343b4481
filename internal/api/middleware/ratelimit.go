package middleware

import (
	"net/http"
	"sync"
	"time"

	"jobi-server/pkg/models"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// clientLimiter tracks the submission rate of a single client address
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmissionLimiter rate-limits posting submissions per client address. It
// is the service-side duplicate-submission guard: a client hammering the
// submit endpoint gets 429 instead of duplicate pending records.
type SubmissionLimiter struct {
	perMinute int
	burst     int
	clients   map[string]*clientLimiter
	mu        sync.Mutex
}

// NewSubmissionLimiter creates a limiter allowing perMinute submissions with
// the given burst per client
func NewSubmissionLimiter(perMinute, burst int) *SubmissionLimiter {
	s := &SubmissionLimiter{
		perMinute: perMinute,
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
	}

	go s.cleanupLoop()

	return s
}

// Middleware returns the echo middleware enforcing the limit
func (s *SubmissionLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !s.allow(c.RealIP()) {
				requestID, _ := c.Get("request_id").(string)
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many submissions, slow down and try again",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}

func (s *SubmissionLimiter) allow(clientIP string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cl, ok := s.clients[clientIP]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(s.perMinute)/60.0), s.burst),
		}
		s.clients[clientIP] = cl
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

// cleanupLoop drops limiters for clients not seen in a while
func (s *SubmissionLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for ip, cl := range s.clients {
			if time.Since(cl.lastSeen) > 30*time.Minute {
				delete(s.clients, ip)
			}
		}
		s.mu.Unlock()
	}
}
