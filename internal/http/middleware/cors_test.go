package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	handler := CORSMiddleware(next)

	assertCommonHeaders := func(t *testing.T, w *httptest.ResponseRecorder) {
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	}

	t.Run("with default origin", func(t *testing.T) {
		originalOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
		defer func() { _ = os.Setenv("CORS_ALLOW_ORIGIN", originalOrigin) }()
		_ = os.Unsetenv("CORS_ALLOW_ORIGIN")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/leads.list", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assertCommonHeaders(t, w)
	})

	t.Run("with configured origin", func(t *testing.T) {
		originalOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
		defer func() { _ = os.Setenv("CORS_ALLOW_ORIGIN", originalOrigin) }()
		_ = os.Setenv("CORS_ALLOW_ORIGIN", "https://crm.example.com")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/leads.list", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://crm.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assertCommonHeaders(t, w)
	})

	t.Run("preflight requests never reach the next handler", func(t *testing.T) {
		nextCalled = false

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/leads.create", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, nextCalled)
		assertCommonHeaders(t, w)
	})
}
