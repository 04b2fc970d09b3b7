package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevns/expense-tracker/internal/lib/jwt"
	"github.com/avdeevns/expense-tracker/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken(7, "alice", true)
	require.NoError(t, err)

	var gotUserID int
	var gotPremium bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotPremium, _ = r.Context().Value(IsPremium).(bool)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	JWTMiddleware(maker, testLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 7, gotUserID)
	assert.True(t, gotPremium)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	JWTMiddleware(maker, testLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTMiddleware_BadToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()

	JWTMiddleware(maker, testLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPremiumMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		isPremium  bool
		wantStatus int
	}{
		{name: "premium user passes", isPremium: true, wantStatus: http.StatusOK},
		{name: "free user forbidden", isPremium: false, wantStatus: http.StatusForbidden},
	}

	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(7, "alice", tt.isPremium)
			require.NoError(t, err)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			chain := JWTMiddleware(maker, testLogger())(PremiumMiddleware(testLogger())(next))

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()

			chain.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, rr.Body.String(), models.ErrNotPremium.Error())
			}
		})
	}
}

func TestPremiumMiddleware_NoAuthContext(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	PremiumMiddleware(testLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
