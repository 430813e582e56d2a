package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-dev/shortlister/internal/jwt"
	"github.com/shortlist-dev/shortlister/internal/middleware/ratelimiter"
)

func TestRateLimit(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allows request within rate limit", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler)

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		rl := ratelimiter.New(0, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler)

		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	})

	t.Run("error getting identity", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, GetEmailFromBody)(okHandler)

		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{no json}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGlobalRateLimit(t *testing.T) {
	rl := ratelimiter.New(0, 2, time.Minute)
	defer rl.Stop()
	handler := GlobalRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// All clients share one budget.
	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		if i == 1 {
			req.RemoteAddr = "10.0.0.2:1234"
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "request %d", i)
	}
}

func TestGetIP(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.10:5555"

		ip, err := GetIP(req)

		require.NoError(t, err)
		assert.Equal(t, "192.168.1.10", ip)
	})

	t.Run("bare ip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.10"

		ip, err := GetIP(req)

		require.NoError(t, err)
		assert.Equal(t, "192.168.1.10", ip)
	})

	t.Run("garbage addr", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "not-an-ip"

		_, err := GetIP(req)

		assert.Error(t, err)
	})
}

func TestGetEmailFromBody(t *testing.T) {
	t.Run("extracts email and restores body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"email": "priya@webknot.in", "password": "x"}`))

		email, err := GetEmailFromBody(req)

		require.NoError(t, err)
		assert.Equal(t, "priya@webknot.in", email)

		// The handler downstream must still be able to read the body.
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "priya@webknot.in")
	})

	t.Run("missing email field", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"password": "x"}`))

		_, err := GetEmailFromBody(req)

		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{not json}`))

		_, err := GetEmailFromBody(req)

		assert.Error(t, err)
	})
}

func TestGetUserIdFromContext(t *testing.T) {
	t.Run("authenticated request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		ctx := context.WithValue(req.Context(), ClaimsKey, &jwt.Claims{UserId: 7})
		req = req.WithContext(ctx)

		identity, err := GetUserIdFromContext(req)

		require.NoError(t, err)
		assert.Equal(t, "user_7", identity)
	})

	t.Run("no claims", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		_, err := GetUserIdFromContext(req)

		assert.Error(t, err)
	})
}
