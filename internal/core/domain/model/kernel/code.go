package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oliveflow/internal/pkg/errs"
)

// CodeDateLayout is the date layout embedded in every code.
const CodeDateLayout = "20060102"

// ErrIdentityAlreadyAssigned is returned when an aggregate is stamped twice.
var ErrIdentityAlreadyAssigned = errors.New("identity is already assigned")

// Code is a human-readable traceability identifier of the form
// {tag}-{YYYYMMDD}-{zero padded identity}, e.g. "olive selling-20241103-000042".
type Code string

// NewCode builds the code of an aggregate of kind tag, created on date and
// persisted with identity id. The date is taken in UTC.
func NewCode(tag string, date time.Time, id ID) (Code, error) {
	if strings.TrimSpace(tag) == "" {
		return "", errs.NewValueIsRequiredError("tag")
	}
	if date.IsZero() {
		return "", errs.NewValueIsRequiredError("date")
	}
	if err := id.Validate(); err != nil {
		return "", err
	}
	return Code(fmt.Sprintf("%s-%s-%06d", tag, date.UTC().Format(CodeDateLayout), int64(id))), nil
}

func (c Code) String() string {
	return string(c)
}

// IsZero reports whether the code has not been generated yet.
func (c Code) IsZero() bool {
	return c == ""
}

// Identity is the (ID, Code) pair of an aggregate. It starts empty and is
// assigned exactly once, right after the first insert.
type Identity struct {
	id   ID
	code Code
}

// RestoreIdentity rebuilds an already assigned identity from storage.
func RestoreIdentity(id ID, code Code) (Identity, error) {
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	if code.IsZero() {
		return Identity{}, errs.NewValueIsRequiredError("code")
	}
	return Identity{id: id, code: code}, nil
}

// Assign stamps the identity with id and the code derived from tag and date.
// A second call fails and leaves the identity unchanged.
func (i *Identity) Assign(tag string, date time.Time, id ID) error {
	if i.IsAssigned() {
		return errs.NewConflictError("identity", ErrIdentityAlreadyAssigned)
	}
	code, err := NewCode(tag, date, id)
	if err != nil {
		return err
	}
	i.id = id
	i.code = code
	return nil
}

// IsAssigned reports whether the aggregate has been persisted.
func (i Identity) IsAssigned() bool {
	return !i.id.IsZero()
}

func (i Identity) ID() ID {
	return i.id
}

func (i Identity) Code() Code {
	return i.code
}
