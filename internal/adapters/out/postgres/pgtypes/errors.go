package pgtypes

import (
	"errors"
	"fmt"

	"oliveflow/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	uniqueViolation        = "23505"
	foreignKeyViolation    = "23503"
	serializationFailure   = "40001"
	deadlockDetected       = "40P01"
	checkConstraintFailure = "23514"
)

// Translate maps driver errors to the error taxonomy. Unique violations and
// serialization failures become retryable conflicts; a missing row becomes
// ObjectNotFoundError for entity and id.
func Translate(entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case uniqueViolation, serializationFailure, deadlockDetected:
		return errs.NewRetryableConflictError(entity, fmt.Errorf("%s: %w", pqErr.Constraint, err))
	case foreignKeyViolation:
		return errs.NewValueIsInvalidErrorWithCause(entity, fmt.Errorf("dangling reference %s", pqErr.Constraint))
	case checkConstraintFailure:
		return errs.NewValueIsInvalidErrorWithCause(entity, fmt.Errorf("check %s failed", pqErr.Constraint))
	default:
		return err
	}
}

// StaleVersion is returned by a versioned update that matched no row.
func StaleVersion(entity string, id any, version int64) error {
	return errs.NewVersionIsInvalidError(entity, fmt.Errorf("%s %v is no longer at version %d", entity, id, version))
}
