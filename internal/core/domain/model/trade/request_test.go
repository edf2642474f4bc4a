package trade_test

import (
	"testing"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("should place a Pending request", func(t *testing.T) {
		o := newOliveOffer(t, 100)

		r, err := trade.NewRequest(o, mill(t, 3), tonnes(t, 40), euros(t, "1.1"), created)

		require.NoError(t, err)
		assert.Equal(t, trade.RequestPending, r.Status())
		assert.Equal(t, o.ID(), r.OfferID())
		require.NoError(t, r.AssignIdentity(7))
		assert.Equal(t, kernel.Code("olive purchase-20241103-000007"), r.Code())
	})

	t.Run("more than available is a validation error", func(t *testing.T) {
		o := newOliveOffer(t, 100)

		_, err := trade.NewRequest(o, mill(t, 3), tonnes(t, 101), euros(t, "1.1"), created)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("a closed offer is not found", func(t *testing.T) {
		o := newOliveOffer(t, 10)
		_, err := o.Reserve(tonnes(t, 10), created)
		require.NoError(t, err)
		require.NoError(t, o.Close(created))

		_, err = trade.NewRequest(o, mill(t, 3), tonnes(t, 1), euros(t, "1.1"), created)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = trade.NewRequest(nil, mill(t, 3), tonnes(t, 1), euros(t, "1.1"), created)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("consumers cannot buy olives", func(t *testing.T) {
		o := newOliveOffer(t, 10)
		consumer, err := kernel.NewConsumer(kernel.NewUUID())
		require.NoError(t, err)

		_, err = trade.NewRequest(o, consumer, tonnes(t, 1), euros(t, "1"), created)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("a seller cannot buy its own oil", func(t *testing.T) {
		seller := mill(t, 3)
		o, err := trade.NewOffer(trade.Oil, 1, seller, tonnes(t, 10), euros(t, "1"), created)
		require.NoError(t, err)

		_, err = trade.NewRequest(o, seller, tonnes(t, 1), euros(t, "1"), created)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRequest_Lifecycle(t *testing.T) {
	later := created.Add(24 * time.Hour)

	t.Run("olive requests need approval before purchase", func(t *testing.T) {
		r, err := trade.NewRequest(newOliveOffer(t, 100), mill(t, 3), tonnes(t, 40), euros(t, "1"), created)
		require.NoError(t, err)

		require.ErrorIs(t, r.ValidateBuy(), errs.ErrConflict)
		require.NoError(t, r.Approve(later))
		assert.Equal(t, later, r.StatusUpdateDate())
		require.NoError(t, r.MarkBought(later))
		assert.Equal(t, trade.RequestBought, r.Status())

		require.ErrorIs(t, r.MarkBought(later), errs.ErrConflict)
		require.ErrorIs(t, r.Reject(later), errs.ErrConflict)
	})

	t.Run("oil requests may be bought from Pending", func(t *testing.T) {
		o, err := trade.NewOffer(trade.Oil, 1, mill(t, 3), tonnes(t, 10), euros(t, "8"), created)
		require.NoError(t, err)
		consumer, err := kernel.NewConsumer(kernel.NewUUID())
		require.NoError(t, err)
		r, err := trade.NewRequest(o, consumer, tonnes(t, 2), euros(t, "8"), created)
		require.NoError(t, err)

		require.NoError(t, r.ValidateBuy())
		require.NoError(t, r.MarkBought(later))
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		r, err := trade.NewRequest(newOliveOffer(t, 100), mill(t, 3), tonnes(t, 40), euros(t, "1"), created)
		require.NoError(t, err)

		require.NoError(t, r.Reject(later))
		require.ErrorIs(t, r.Approve(later), errs.ErrConflict)
	})
}

func TestRequest_LeaveFeedback(t *testing.T) {
	r, err := trade.NewRequest(newOliveOffer(t, 100), mill(t, 3), tonnes(t, 40), euros(t, "1"), created)
	require.NoError(t, err)

	require.ErrorIs(t, r.LeaveFeedback(4, "good olives"), errs.ErrConflict)

	require.NoError(t, r.Approve(created))
	require.NoError(t, r.MarkBought(created))

	require.ErrorIs(t, r.LeaveFeedback(6, ""), errs.ErrValueIsOutOfRange)
	require.NoError(t, r.LeaveFeedback(4, "  good olives "))
	assert.Equal(t, 4, *r.Appreciation())
	assert.Equal(t, "good olives", r.Feedback())

	require.ErrorIs(t, r.LeaveFeedback(5, "again"), errs.ErrConflict)
}

func TestNewNeed(t *testing.T) {
	t.Run("olive needs come from mills", func(t *testing.T) {
		_, err := trade.NewNeed(trade.Olive, farmer(t), tonnes(t, 5), euros(t, "1"), created, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("oil needs come from a mill or a consumer", func(t *testing.T) {
		consumer, err := kernel.NewConsumer(kernel.NewUUID())
		require.NoError(t, err)

		n, err := trade.NewNeed(trade.Oil, consumer, tonnes(t, 5), euros(t, "9"), created, "EVOO")
		require.NoError(t, err)
		require.NoError(t, n.AssignIdentity(2))
		assert.Equal(t, kernel.Code("oil need-20241103-000002"), n.Code())
	})

	t.Run("an unsaved need cannot be answered", func(t *testing.T) {
		n, err := trade.NewNeed(trade.Olive, mill(t, 1), tonnes(t, 5), euros(t, "1"), created, "")
		require.NoError(t, err)
		require.ErrorIs(t, n.Respond(created), errs.ErrValueIsRequired)
	})
}
