package response

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/pkg/apperror"
)

// Envelope is the fixed response body shape used by every endpoint.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// Pagination describes a page of a list response.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit) with a floor of 1.
func NewPagination(total, page, limit int64) Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// JSON writes a success envelope with the given status
func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	})
}

// Error writes an error envelope, taking the status from the error when it
// carries one. Unexpected errors are logged and masked.
func Error(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	message := err.Error()
	if status >= 500 {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
	}
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}
