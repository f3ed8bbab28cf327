package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newEngine(hash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(), RequireAPIKey(hash))
	r.Any("/thing", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r http.Handler, method, key string) int {
	req := httptest.NewRequest(method, "/thing", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newEngine(string(hash))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodDelete, "nope"))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPut, "letmein"))
}

func TestRequireAPIKey_DisabledWithoutHash(t *testing.T) {
	r := newEngine("")
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, ""))
}
