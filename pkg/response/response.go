package response

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "ticket-srv/pkg/errors"
)

const (
	// DateFormat is the wire format for Date fields.
	DateFormat = "2006-01-02"
	// DateTimeFormat is the wire format for DateTime fields.
	DateTimeFormat = "2006-01-02 15:04:05"
)

// OK writes a 200 response with the given data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   "Success",
		Data:      data,
	})
}

// Accepted writes a 202 response with the given data.
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, Resp{
		ErrorCode: 0,
		Message:   "Accepted",
		Data:      data,
	})
}

// Error writes an error response. HTTPError values carry their own code and
// status, anything else becomes a 500.
func Error(c *gin.Context, err error) {
	var httpErr *pkgErrors.HTTPError
	if stderrors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   "Internal server error",
	})
}

// ErrorWithMap resolves err through mapping before writing the response.
func ErrorWithMap(c *gin.Context, err error, mapping ErrorMapping) {
	if mapped, ok := mapping[err]; ok {
		Error(c, mapped)
		return
	}
	Error(c, err)
}
