package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/jwt"
)

func TestNeedAuth(t *testing.T) {
	jwtService := jwt.New("test_secret", time.Hour)
	user := domain.User{Id: 7, Name: "Priya", Email: "priya@webknot.in"}
	token, err := jwtService.NewToken(user)
	require.NoError(t, err)

	expiredService := jwt.New("test_secret", -time.Hour)
	expiredToken, err := expiredService.NewToken(user)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectClaims   bool
	}{
		{
			name:           "Valid bearer token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectClaims:   true,
		},
		{
			name:           "No header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing bearer prefix",
			header:         token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage token",
			header:         "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired token",
			header:         "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	auth := NewAuth(jwtService)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com/jd/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler := auth.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims := GetClaimsFromContext(r)
				require.NotNil(t, claims, "middleware should always propagate claims thru context")
				assert.Equal(t, domain.UserId(7), claims.UserId)
				assert.Equal(t, "Priya", claims.Name)

				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, "handler returned wrong status code")
		})
	}
}

func TestGetClaimsFromContext(t *testing.T) {
	claims := &jwt.Claims{UserId: 7, Name: "Priya"}
	req := httptest.NewRequest("GET", "http://example.com", nil)
	ctx := context.WithValue(req.Context(), ClaimsKey, claims)
	req = req.WithContext(ctx)

	retrieved := GetClaimsFromContext(req)
	assert.Equal(t, claims, retrieved)

	req = httptest.NewRequest("GET", "http://example.com", nil)
	retrieved = GetClaimsFromContext(req)
	assert.Nil(t, retrieved)
}
