package response

import (
	"net/http"

	"curtaincrm/internal/pkg/logging"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Message is Success with a human readable message. data may be nil.
func Message(c *gin.Context, statusCode int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

func List(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code": code,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":    code,
			"details": details,
		},
	})
}

// Abort writes an error response and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

func ValidationError(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, CodeValidation, "Validation failed", fields)
}

// Internal logs err with the request logger and answers with a generic 500.
// The error text never reaches the client.
func Internal(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"user_id", c.GetInt64("user_id"),
		"error", err,
	)
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
}
