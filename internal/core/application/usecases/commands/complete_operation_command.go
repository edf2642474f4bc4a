package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"
)

var ErrCompleteOperationCommandIsNotConstructed = errors.New(
	"CompleteOperationCommand must be created via NewCompleteOperationCommand constructor",
)

// Report is a file attached to an analysis.
type Report struct {
	Name        string
	ContentType string
	Body        []byte
}

// CompleteOperationCommand records that the mill performed the service of an
// approved offer. Report is only accepted for analyses.
type CompleteOperationCommand struct {
	actor   kernel.Actor
	offerID kernel.ID
	record  service.Record
	report  *Report

	guard guard.ConstructorGuard
}

func NewCompleteOperationCommand(
	actor kernel.Actor,
	offerID kernel.ID,
	record service.Record,
	report *Report,
) (CompleteOperationCommand, error) {
	if err := errors.Join(actor.Validate(), offerID.Validate()); err != nil {
		return CompleteOperationCommand{}, err
	}
	if record == nil {
		return CompleteOperationCommand{}, errs.NewValueIsRequiredError("operation record")
	}
	if analysis, ok := record.(service.AnalysisRecord); ok && analysis.ReportKey != "" {
		return CompleteOperationCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"report key", errors.New("the key is assigned when the report is stored"))
	}
	if report != nil {
		if record.Kind() != service.Analysis {
			return CompleteOperationCommand{}, errs.NewValueIsInvalidErrorWithCause(
				"report", errors.New("only analyses carry a report"))
		}
		if len(report.Body) == 0 {
			return CompleteOperationCommand{}, errs.NewValueIsRequiredError("report content")
		}
	}
	return CompleteOperationCommand{
		actor:   actor,
		offerID: offerID,
		record:  record,
		report:  report,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOperationCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOperationCommandIsNotConstructed)
}

func (c CompleteOperationCommand) Actor() kernel.Actor    { return c.actor }
func (c CompleteOperationCommand) OfferID() kernel.ID     { return c.offerID }
func (c CompleteOperationCommand) Record() service.Record { return c.record }
func (c CompleteOperationCommand) Report() *Report        { return c.report }
