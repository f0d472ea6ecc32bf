// Package response writes the JSON envelope shared by every endpoint:
//
//	{"success": true, "data": ..., "message": "...", "pagination": {...}}
//	{"success": false, "error": "..."}
package response

import (
	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/pagination"
)

type Envelope struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Message    string           `json:"message,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func SuccessWithPagination(c *gin.Context, status int, data any, message string, meta pagination.Meta) {
	c.JSON(status, Envelope{
		Success:    true,
		Data:       data,
		Message:    message,
		Pagination: &meta,
	})
}

// Error writes the failure envelope and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   message,
	})
}
