package errx

import "net/http"

// WrapSearch maps unified-search collaborator failures to the unified Error
// type. The status reflects the upstream response when one was received.
func WrapSearch(err error, status int) *Error {
	if err == nil {
		return nil
	}
	if status == 0 {
		status = http.StatusBadGateway
	}
	return New(err, status, SearchErrorMessage)
}
