package gdocs

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind classifies fetch failures.
type Kind string

const (
	KindInvalidURL       Kind = "INVALID_URL"
	KindDocumentNotFound Kind = "DOCUMENT_NOT_FOUND"
	KindAccessDenied     Kind = "ACCESS_DENIED"
)

// Error is a classified fetch failure carrying the HTTP status the
// handler should respond with.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalidURL(message string) *Error {
	return &Error{Kind: KindInvalidURL, Status: http.StatusBadRequest, Message: message}
}

// Document-not-found is proxied as a 400: the id came out of the
// caller's URL, so a missing document is their input's fault.
func notFound(id string) *Error {
	return &Error{
		Kind:    KindDocumentNotFound,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("document %s not found", id),
	}
}

func accessDenied(status int, message string) *Error {
	if status == 0 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: KindAccessDenied, Status: status, Message: message}
}

// statusOf extracts the HTTP status from a Google API error, or 0 when
// the failure never produced a response.
func statusOf(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
