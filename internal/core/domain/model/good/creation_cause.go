package good

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// CreationCause records how an oil product came to exist. Its short code is
// also the tag of the product's traceability code.
type CreationCause int

const (
	UnknownCause CreationCause = iota
	Extraction
	Storage
	Packaging
	Buying
)

func getCreationCauseStrings() map[CreationCause]string {
	return map[CreationCause]string{
		UnknownCause: "Unknown",
		Extraction:   "Extraction",
		Storage:      "Storage",
		Packaging:    "Packaging",
		Buying:       "Buying",
	}
}

func getCreationCauseTags() map[CreationCause]string {
	//nolint:exhaustive // Unknown has no tag
	return map[CreationCause]string{
		Extraction: "E",
		Storage:    "St",
		Packaging:  "P",
		Buying:     "B",
	}
}

// ParseCreationCause accepts the short tag ("E", "St", "P", "B").
func ParseCreationCause(tag string) (CreationCause, error) {
	for c, t := range getCreationCauseTags() {
		if t == tag {
			return c, nil
		}
	}
	return UnknownCause, errs.NewValueIsInvalidErrorWithCause(
		"creation cause is invalid", fmt.Errorf("%q is not a valid creation cause", tag))
}

func (c CreationCause) Validate() error {
	if _, ok := getCreationCauseTags()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"creation cause is invalid", fmt.Errorf("%d is not a valid creation cause", c))
	}
	return nil
}

// Tag is the short form used in codes and storage.
func (c CreationCause) Tag() string {
	return getCreationCauseTags()[c]
}

func (c CreationCause) String() string {
	if s, ok := getCreationCauseStrings()[c]; ok {
		return s
	}
	return "Unknown"
}
