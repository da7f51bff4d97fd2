// Package response builds the {success, message, data?, total?,
// totalPages?} envelope every action returns. Keeping it in one place
// stops each controller from re-growing its own copy.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a success envelope with an optional data payload.
func OK(c *gin.Context, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Created writes a success envelope for a newly created record.
func Created(c *gin.Context, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusCreated, body)
}

// Paged writes a success envelope for a list result. totalPages is
// ceil(total/pageSize).
func Paged(c *gin.Context, data interface{}, total int64, totalPages int) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "ok",
		"data":       data,
		"total":      total,
		"totalPages": totalPages,
	})
}

// Fail writes a failure envelope. No data field is ever attached.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// NotAuthorized is the terminal reply for a failed guard check.
func NotAuthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "not authorized")
}

// BadRequest reports a malformed or invalid payload.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound reports a missing (or out-of-tenant) record.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Internal reports an unexpected failure with a generic message; the
// underlying error is logged by the caller, never exposed.
func Internal(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
