package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Common storage error types
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrMissingKey       = errors.New("missing key attribute id")
	ErrInvalidTableName = errors.New("invalid table name")
	ErrTableClosed      = errors.New("table is closed")
)

// StorageError represents a table operation error with additional context
type StorageError struct {
	Op  string // Operation that failed (e.g., "Put", "Scan")
	Key string // Record id involved in the operation
	Err error  // Underlying error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s operation failed for key '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{
		Op:  op,
		Key: key,
		Err: err,
	}
}

// IsNotFound returns true if the error indicates a record was not found
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

// ErrorCode returns the service error code of an AWS API error, such as
// "ResourceNotFoundException", or an empty string for other errors
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
