package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONSuccess sends a success body of the form {"message": ..., <extra fields>}.
func JSONSuccess(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// JSONError sends a failure body of the form {"error": <message>}.
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
