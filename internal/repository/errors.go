package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrVersionConflict is returned when a conditioned write matched the
	// row id but not the expected row version: the row was modified by
	// another writer since the client last read it.
	ErrVersionConflict = errors.New("row was modified by another user")

	// ErrForeignKeyViolation is returned when a write breaks a foreign
	// key constraint, e.g. deleting a category that products still reference.
	ErrForeignKeyViolation = errors.New("operation violates a foreign key constraint")
)

// isForeignKeyViolation classifies driver errors raised by the storage
// layer's referential constraints. Postgres reports class 23503; the
// sqlite driver used in tests reports a plain message.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint")
}
