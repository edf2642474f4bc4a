// Package errs provides the typed errors returned by the olive supply-chain core.
//
// Every error follows the same shape: a sentinel (ErrValueIsRequired,
// ErrObjectNotFound, ...), a struct carrying the details, constructors with
// and without a cause, Error() and Unwrap().
//
// The categories callers branch on:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError (IsValidation)
//   - not found: ObjectNotFoundError
//   - permission: PermissionDeniedError
//   - conflict: ConflictError, InsufficientQuantityError, VersionIsInvalidError (IsConflict)
//
// Conflicts caused by a lost race (unique code collision, stale version) are
// retryable, see IsRetryable.
package errs
