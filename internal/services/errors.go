package services

import (
	"errors"
	"fmt"
	"strings"

	"backoffice-service/internal/models"
)

// ValidationError carries field-scoped messages for input that failed
// the declarative rules. Handlers re-render the submitted values with
// the messages attached; this is never a fatal condition.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// validationError builds a single-field ValidationError
func validationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []models.FieldError{{Field: field, Message: message}}}
}

// ErrCategoryHasChildren rejects deleting a category that still has
// subcategories; the children must be moved or removed first.
var ErrCategoryHasChildren = errors.New("category has subcategories and cannot be deleted")

// VersionConflictError reports a write-write conflict detected by a
// conditioned write. It carries the persisted values at conflict time, a
// per-field diff against the client's proposed values, and the current
// row version so the caller can re-submit against the new baseline.
// When Deleted is set the row was removed concurrently and there are no
// current values to diff against.
type VersionConflictError struct {
	Deleted        bool
	Message        string
	CurrentVersion int64
	Conflicts      []models.FieldConflict
}

func (e *VersionConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "the record was modified by another user"
}

// deletedConflict is the conflict raised when the row vanished mid-edit
func deletedConflict() *VersionConflictError {
	return &VersionConflictError{
		Deleted: true,
		Message: "the record was removed by another user",
	}
}

// retryConflict is the generic conflict for conditioned deletes, where a
// field diff is meaningless
func retryConflict() *VersionConflictError {
	return &VersionConflictError{
		Message: "the record was modified by another user; refresh and try again",
	}
}
