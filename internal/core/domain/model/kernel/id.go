package kernel

import (
	"fmt"
	"math"
	"strconv"

	"oliveflow/internal/pkg/errs"
)

// ID is the identity storage assigns to an aggregate on first insert.
// The zero ID means "not persisted yet".
type ID int64

// NewID validates that v is a positive identity.
func NewID(v int64) (ID, error) {
	id := ID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal identity, as found in URLs.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q is not a number", s))
	}
	return NewID(v)
}

// Validate reports whether the identity is positive.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), 1, int64(math.MaxInt64))
	}
	return nil
}

// IsZero reports whether the identity has not been assigned.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the raw identity value.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID returns nil for the zero ID and a pointer otherwise.
func OptionalID(id ID) *ID {
	if id.IsZero() {
		return nil
	}
	return &id
}
