package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerUserBucket(t *testing.T) {
	rl := NewRateLimiter(6, logger.NewTest(t)) // burst 1
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	post := func(uid string) int {
		req := httptest.NewRequest(http.MethodPost, "/animals/a1/likes", nil)
		req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: uid}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, post("u1"))
	assert.Equal(t, http.StatusTooManyRequests, post("u1"))
	// otro usuario, otro bucket
	assert.Equal(t, http.StatusCreated, post("u2"))
}

func TestRateLimiter_ReadsAreNotLimited(t *testing.T) {
	rl := NewRateLimiter(6, nil)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_DisabledIsPassThrough(t *testing.T) {
	rl := NewRateLimiter(0, nil)
	assert.Nil(t, rl)

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestAuthContext_DevHeaders(t *testing.T) {
	var got auth.Claims
	var ok bool
	h := AuthContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "staff-1")
	req.Header.Set("X-Debug-Role", "staff")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "staff-1", got.UserID)
	assert.Equal(t, "STAFF", got.Role)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "u-9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "ADOPTER", got.Role)

	ok = true
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestRateLimiter_ExemptRequestsSkipBucket(t *testing.T) {
	rl := NewRateLimiter(6, nil).Exempt(func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/staff/")
	})
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/staff/animals", nil)
		req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "staff-1"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestRateLimiter_ConcurrentFirstRequestsShareOneBucket(t *testing.T) {
	rl := NewRateLimiter(6, logger.NewTest(t)) // burst 1

	const n = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
		start   = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if rl.Allow("user:u1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, allowed)
}
