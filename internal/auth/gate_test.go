package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func gated(log *zap.Logger) (http.Handler, *bool) {
	called := new(bool)
	h := Gate(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}))
	return h, called
}

func TestRequiresAuth(t *testing.T) {
	assert.True(t, RequiresAuth("/products"))
	assert.True(t, RequiresAuth("/products/1"))
	assert.True(t, RequiresAuth("/products/anything/else"))
	assert.False(t, RequiresAuth("/users/sign_in"))
	assert.False(t, RequiresAuth("/auth/login"))
	assert.False(t, RequiresAuth("/"))
}

func TestGate_ForwardsUnprotectedPaths(t *testing.T) {
	h, called := gated(zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/sign_up", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestGate_RejectsAnonymousOnEveryMethod(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h, called := gated(zap.New(core))

	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	for _, method := range methods {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/products/1", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code, method)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"error": "You need to sign in before continuing"}, body)
	}

	assert.False(t, *called)
	assert.Equal(t, len(methods), logs.FilterMessage("unauthorized access attempt").Len())
}

func TestGate_AdmitsSignedInSession(t *testing.T) {
	h, called := gated(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req = req.WithContext(WithSession(req.Context(), Session{Username: "admin"}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}
