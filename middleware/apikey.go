package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"hotel-reservation/utils"
)

const APIKeyHeader = "X-API-Key"

// RequireAPIKey guards mutating requests with a key checked against a bcrypt
// hash. Reads pass through. An empty hash disables the check.
func RequireAPIKey(hash string) gin.HandlerFunc {
	hash = strings.TrimSpace(hash)
	return func(c *gin.Context) {
		if hash == "" || isReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			logrus.WithFields(logrus.Fields{
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			}).Warn("rejected request without a valid API key")
			utils.JSONError(c, http.StatusUnauthorized, "missing or invalid API key")
			c.Abort()
			return
		}
		c.Next()
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
