package trade_test

import (
	"fmt"
	"testing"

	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferStatus_Transitions(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(trade.OfferUnknown))
		assert.Equal(t, 1, int(trade.OfferAvailable))
		assert.Equal(t, 2, int(trade.OfferClosed))
		assert.Equal(t, 3, int(trade.OfferCancelled))
	})

	t.Run("only Available may close or cancel", func(t *testing.T) {
		closed, err := trade.OfferAvailable.Close()
		require.NoError(t, err)
		assert.Equal(t, trade.OfferClosed, closed)

		cancelled, err := trade.OfferAvailable.Cancel()
		require.NoError(t, err)
		assert.Equal(t, trade.OfferCancelled, cancelled)

		for _, s := range []trade.OfferStatus{trade.OfferClosed, trade.OfferCancelled, trade.OfferUnknown} {
			t.Run(s.String(), func(t *testing.T) {
				_, err := s.Close()
				require.ErrorIs(t, err, errs.ErrConflict)
				_, err = s.Cancel()
				require.ErrorIs(t, err, errs.ErrConflict)
				require.ErrorIs(t, s.ValidateReserve(), errs.ErrConflict)
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, s := range []trade.OfferStatus{trade.OfferUnknown, trade.OfferStatus(-1), trade.OfferStatus(9)} {
			t.Run(fmt.Sprintf("value %d", int(s)), func(t *testing.T) {
				err := s.Validate()
				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
			})
		}
	})

	t.Run("parse is the inverse of String", func(t *testing.T) {
		for _, s := range []trade.OfferStatus{trade.OfferAvailable, trade.OfferClosed, trade.OfferCancelled} {
			parsed, err := trade.ParseOfferStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
		_, err := trade.ParseOfferStatus("Unknown")
		require.Error(t, err)
	})
}

func TestRequestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    trade.RequestStatus
		direct  bool
		approve bool
		reject  bool
		buy     bool
	}{
		{name: "pending", from: trade.RequestPending, approve: true, reject: true},
		{name: "pending direct", from: trade.RequestPending, direct: true, approve: true, reject: true, buy: true},
		{name: "approved", from: trade.RequestApproved, buy: true},
		{name: "approved direct", from: trade.RequestApproved, direct: true, buy: true},
		{name: "rejected", from: trade.RequestRejected, direct: true},
		{name: "bought", from: trade.RequestBought, direct: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.from.Approve()
			assert.Equal(t, tt.approve, err == nil, "approve: %v", err)

			_, err = tt.from.Reject()
			assert.Equal(t, tt.reject, err == nil, "reject: %v", err)

			got, err := tt.from.Buy(tt.direct)
			assert.Equal(t, tt.buy, err == nil, "buy: %v", err)
			if tt.buy {
				assert.Equal(t, trade.RequestBought, got)
			} else {
				require.ErrorIs(t, err, errs.ErrConflict)
			}
		})
	}

	t.Run("terminal statuses", func(t *testing.T) {
		assert.True(t, trade.RequestBought.IsTerminal())
		assert.True(t, trade.RequestRejected.IsTerminal())
		assert.False(t, trade.RequestApproved.IsTerminal())
		assert.True(t, trade.RequestApproved.IsOpen())
	})
}

func TestNeedStatus_Respond(t *testing.T) {
	s, err := trade.NeedPending.Respond()
	require.NoError(t, err)
	assert.Equal(t, trade.NeedResponded, s)

	s, err = s.Respond()
	require.NoError(t, err)
	assert.Equal(t, trade.NeedResponded, s)

	_, err = trade.NeedUnknown.Respond()
	require.ErrorIs(t, err, errs.ErrConflict)
}
