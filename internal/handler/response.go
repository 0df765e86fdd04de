package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// errorBody is the error envelope every route shares: a human message, an
// optional upstream detail payload and the server timestamp.
type errorBody struct {
	Error     string    `json:"error"`
	Details   any       `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, errorBody{
		Error:     message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQuery(c *gin.Context, key string) bool {
	return c.Query(key) == "true"
}
