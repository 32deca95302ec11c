package models

import (
	"net/http"
)

// Response messages
const (
	MessageOK           = "OK"
	MessageItemNotFound = "Item not found"
	MessageNotFound     = "Not found"

	// Prefixes for store failures, followed by the error text
	PrefixGetFailed    = "Exception while getting item: "
	PrefixCreateFailed = "Exception during creation: "
	PrefixDeleteFailed = "Exception during deletion: "
	PrefixInvalidBody  = "Invalid request body: "
)

// Message is the payload of every response that does not carry records
type Message struct {
	Message string `json:"message"`
}

// Result is the outcome of a storage access operation: a status code and
// the payload to serialize as the response body
type Result struct {
	StatusCode int
	Payload    interface{}
}

// NewResult creates a result carrying a data payload
func NewResult(statusCode int, payload interface{}) Result {
	return Result{StatusCode: statusCode, Payload: payload}
}

// NewMessageResult creates a result carrying a {"message": ...} payload
func NewMessageResult(statusCode int, message string) Result {
	return Result{StatusCode: statusCode, Payload: Message{Message: message}}
}

// OK is the result of a successful write
func OK() Result {
	return NewMessageResult(http.StatusOK, MessageOK)
}

// IsSuccess reports whether the result has a 2xx status code
func (r Result) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
