package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimiter limita escrituras de solicitantes (likes, solicitudes).
// Un token bucket por usuario (o IP si es anónimo), con expiración LRU.
type RateLimiter struct {
	mu       sync.Mutex // get-or-create del limiter por clave
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
	exempt   func(*http.Request) bool
	log      logger.Logger
}

// NewRateLimiter con perMin <= 0 devuelve nil (sin límite).
func NewRateLimiter(perMin int, log logger.Logger) *RateLimiter {
	if perMin <= 0 {
		return nil
	}
	if log == nil {
		log = logger.NewNop()
	}
	burst := perMin / 6
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			4096,
			nil,
			10*time.Minute,
		),
		rate:  rate.Limit(float64(perMin) / 60.0),
		burst: burst,
		log:   log,
	}
}

// Exempt define qué requests no consumen tokens (p.ej. rutas de staff).
func (l *RateLimiter) Exempt(fn func(*http.Request) bool) *RateLimiter {
	if l != nil {
		l.exempt = fn
	}
	return l
}

func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, lim)
	}
	return lim
}

// Middleware solo aplica a métodos que escriben; los GET pasan siempre.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if l.exempt != nil && l.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}

		if !l.Allow(limiterKey(r)) {
			metrics.RateLimitedRequests.Inc()
			apperr.WriteHTTP(w, r, l.log, apperr.RateLimited("too many requests, try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limiterKey(r *http.Request) string {
	if c, ok := GetClaims(r.Context()); ok && strings.TrimSpace(c.UserID) != "" {
		return "user:" + c.UserID
	}
	// RealIP de chi ya reescribió RemoteAddr.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
