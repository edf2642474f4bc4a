package good

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// Quality is the commercial grade of an oil, known only after analysis.
type Quality int

const (
	NotDefined Quality = iota
	ExtraVirgin
	Virgin
	Lampante
	Refined
	Pomace
)

func getQualityStrings() map[Quality]string {
	return map[Quality]string{
		NotDefined:  "N",
		ExtraVirgin: "EVOO",
		Virgin:      "VOO",
		Lampante:    "L",
		Refined:     "R",
		Pomace:      "P",
	}
}

func ParseQuality(s string) (Quality, error) {
	for q, str := range getQualityStrings() {
		if str == s {
			return q, nil
		}
	}
	return NotDefined, errs.NewValueIsInvalidErrorWithCause(
		"quality is invalid", fmt.Errorf("%q is not a valid oil quality", s))
}

func (q Quality) Validate() error {
	if _, ok := getQualityStrings()[q]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"quality is invalid", fmt.Errorf("%d is not a valid oil quality", q))
	}
	return nil
}

func (q Quality) String() string {
	if s, ok := getQualityStrings()[q]; ok {
		return s
	}
	return "N"
}
