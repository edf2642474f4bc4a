package postgres

import (
	"fmt"

	"oliveflow/internal/pkg/metrics"
)

// CommitCounter counts aggregates by type label.
type CommitCounter interface {
	AggregateCommitted(aggregate string)
}

type commitMetrics struct {
	counter CommitCounter
}

// NewCommitMetrics returns a CommitObserver counting every committed
// aggregate under its type, e.g. "trade.offer".
func NewCommitMetrics(counter CommitCounter) CommitObserver {
	return commitMetrics{counter: counter}
}

func (o commitMetrics) Committed(aggregates []TrackedAggregate) {
	for _, a := range aggregates {
		o.counter.AggregateCommitted(metrics.AggregateName(fmt.Sprintf("%T", a.Aggregate)))
	}
}
