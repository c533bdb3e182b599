package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an ID when the client sends none", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())

		var seen string
		router.GET("/ping", func(c *gin.Context) {
			seen = c.GetString(RequestIDKey)
			c.Status(http.StatusOK)
		})

		w := performRequest(router, http.MethodGet, "/ping", nil)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("reuses the client-supplied ID", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := performRequest(router, http.MethodGet, "/ping", map[string]string{
			RequestIDHeader: "client-id-123",
		})

		assert.Equal(t, "client-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestCORSWithOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(origins ...string) *gin.Engine {
		router := gin.New()
		router.Use(CORSWithOrigins(origins))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("allowed origin echoed back", func(t *testing.T) {
		router := newRouter("http://localhost:5173")

		w := performRequest(router, http.MethodGet, "/ping", map[string]string{
			"Origin": "http://localhost:5173",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		router := newRouter("http://localhost:5173")

		w := performRequest(router, http.MethodGet, "/ping", map[string]string{
			"Origin": "http://evil.example.com",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		router := newRouter("*")

		w := performRequest(router, http.MethodGet, "/ping", map[string]string{
			"Origin": "http://anywhere.example.com",
		})

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight answered with 204", func(t *testing.T) {
		router := newRouter("http://localhost:5173")

		w := performRequest(router, http.MethodOptions, "/ping", map[string]string{
			"Origin": "http://localhost:5173",
		})

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}
