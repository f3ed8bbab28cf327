package utils

import "github.com/gin-gonic/gin"

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

// JSONValidationError writes a 400 carrying one message per offending field.
func JSONValidationError(c *gin.Context, code int, fields map[string]string) {
	c.JSON(code, gin.H{
		"status":  "error",
		"message": "validation failed",
		"errors":  fields,
	})
}
