package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
	"github.com/Harmony-cloud-01/mandarin-app/internal/config"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service/auth"
)

func newSessionFixture(t *testing.T) (*SessionMiddleware, auth.JWTService) {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "middleware-test-secret-long-enough-ok!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	return NewSessionMiddleware(jwtService), jwtService
}

func TestAuthenticateSetsProfileID(t *testing.T) {
	t.Parallel() // Enable parallel execution
	mw, jwtService := newSessionFixture(t)

	token, err := jwtService.GenerateToken(context.Background(), "p1")
	require.NoError(t, err)

	var gotProfileID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := shared.ProfileIDFromContext(r.Context())
		require.True(t, ok, "profile id missing from context")
		gotProfileID = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", gotProfileID)
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel() // Enable parallel execution
	mw, jwtService := newSessionFixture(t)

	token, err := jwtService.GenerateToken(context.Background(), "p1")
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "malformed", header: "Bearer"},
		{name: "tampered token", header: "Bearer " + token + "x"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run on auth failure")
	})

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
