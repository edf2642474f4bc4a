package trade

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// NeedStatus tracks whether any seller answered a need.
type NeedStatus int

const (
	NeedUnknown NeedStatus = iota
	NeedPending
	NeedResponded
)

func getNeedStatusStrings() map[NeedStatus]string {
	return map[NeedStatus]string{
		NeedUnknown:   "Unknown",
		NeedPending:   "Pending",
		NeedResponded: "Responded",
	}
}

func ParseNeedStatus(s string) (NeedStatus, error) {
	for status, str := range getNeedStatusStrings() {
		if status != NeedUnknown && str == s {
			return status, nil
		}
	}
	return NeedUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid need status", s))
}

func (s NeedStatus) String() string {
	if str, ok := getNeedStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Respond moves a need to Responded. Several sellers may answer one need.
func (s NeedStatus) Respond() (NeedStatus, error) {
	if s != NeedPending && s != NeedResponded {
		return NeedUnknown, errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to respond to", s),
		)
	}
	return NeedResponded, nil
}
