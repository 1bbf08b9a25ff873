// Package common provides response helpers shared by the API handler packages.
package common

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/errors"
)

// MessageResponse is the unified success envelope for mutations.
// Every create/update/delete acknowledgment uses this single shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message writes a success acknowledgment with the given status
func Message(c *gin.Context, status int, format string, args ...interface{}) {
	c.JSON(status, MessageResponse{Message: fmt.Sprintf(format, args...)})
}

// Error writes the structured error response for err, using its mapped
// HTTP status. Unknown error types surface as 500.
func Error(c *gin.Context, err error) {
	c.JSON(errors.GetHTTPStatus(err), errors.NewResponse(err))
}
