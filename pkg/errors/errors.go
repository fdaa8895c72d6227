package errors

import "fmt"

// HTTPError carries an application error code and the HTTP status it maps to.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("error %d: %s", e.Code, e.Message)
}

// NewHTTPError returns an HTTPError with a 400 status.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: 400}
}

// NewHTTPErrorWithStatus returns an HTTPError with an explicit HTTP status.
func NewHTTPErrorWithStatus(code int, message string, status int) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: status}
}
