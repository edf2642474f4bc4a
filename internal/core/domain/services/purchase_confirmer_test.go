package services_test

import (
	"testing"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.November, 3, 10, 0, 0, 0, time.UTC)

func tonnes(t *testing.T, v int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(v), kernel.Tonnes)
	require.NoError(t, err)
	return q
}

func euros(t *testing.T) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString("1.250"), kernel.Euro)
	require.NoError(t, err)
	return m
}

func millParty(t *testing.T, id kernel.ID) kernel.Party {
	t.Helper()
	p, err := kernel.NewMill(id)
	require.NoError(t, err)
	return p
}

func farmerParty(t *testing.T, id kernel.UUID) kernel.Party {
	t.Helper()
	p, err := kernel.NewFarmer(id)
	require.NoError(t, err)
	return p
}

type offerBook struct {
	t        *testing.T
	offer    *trade.Offer
	requests []*trade.Request
	nextID   kernel.ID
}

func newOfferBook(t *testing.T, initial int64) *offerBook {
	offer, err := trade.NewOffer(trade.Olive, 1, farmerParty(t, kernel.NewUUID()), tonnes(t, initial), euros(t), now)
	require.NoError(t, err)
	require.NoError(t, offer.AssignIdentity(1))
	return &offerBook{t: t, offer: offer, nextID: 1}
}

func (b *offerBook) request(mill kernel.ID, q int64) (*trade.Request, error) {
	r, err := trade.NewRequest(b.offer, millParty(b.t, mill), tonnes(b.t, q), euros(b.t), now)
	if err != nil {
		return nil, err
	}
	b.nextID++
	require.NoError(b.t, r.AssignIdentity(b.nextID))
	b.requests = append(b.requests, r)
	return r, nil
}

// conserved checks sum(bought) == initial - available.
func (b *offerBook) conserved() bool {
	bought := decimal.Zero
	for _, r := range b.requests {
		if r.Status() == trade.RequestBought {
			bought = bought.Add(r.Requested().Value())
		}
	}
	return bought.Equal(b.offer.Initial().Value().Sub(b.offer.Available().Value()))
}

func TestPurchaseConfirmer_Scenario(t *testing.T) {
	confirmer := services.NewPurchaseConfirmer()
	book := newOfferBook(t, 100)

	a, err := book.request(3, 40)
	require.NoError(t, err)
	require.NoError(t, a.Approve(now))
	purchase, err := confirmer.Confirm(book.offer, a, now)
	require.NoError(t, err)

	assert.False(t, purchase.Closed)
	assert.True(t, book.offer.Available().Equal(tonnes(t, 60)))
	assert.Equal(t, trade.OfferAvailable, book.offer.Status())
	assert.Equal(t, trade.RequestBought, a.Status())
	assert.True(t, book.conserved())

	b, err := book.request(4, 60)
	require.NoError(t, err)
	require.NoError(t, b.Approve(now))
	purchase, err = confirmer.Confirm(book.offer, b, now)
	require.NoError(t, err)

	assert.True(t, purchase.Closed)
	assert.True(t, book.offer.Available().IsZero())
	assert.Equal(t, trade.OfferClosed, book.offer.Status())
	assert.Equal(t, trade.RequestBought, b.Status())
	assert.True(t, book.conserved())

	_, err = book.request(5, 10)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPurchaseConfirmer_NoDoubleSpend(t *testing.T) {
	confirmer := services.NewPurchaseConfirmer()
	book := newOfferBook(t, 100)
	r, err := book.request(3, 40)
	require.NoError(t, err)
	require.NoError(t, r.Approve(now))

	_, err = confirmer.Confirm(book.offer, r, now)
	require.NoError(t, err)

	_, err = confirmer.Confirm(book.offer, r, now)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, book.offer.Available().Equal(tonnes(t, 60)))
	assert.True(t, book.conserved())
}

func TestPurchaseConfirmer_RevalidatesQuantity(t *testing.T) {
	confirmer := services.NewPurchaseConfirmer()
	book := newOfferBook(t, 100)

	first, err := book.request(3, 70)
	require.NoError(t, err)
	second, err := book.request(4, 70)
	require.NoError(t, err)
	require.NoError(t, first.Approve(now))
	require.NoError(t, second.Approve(now))

	_, err = confirmer.Confirm(book.offer, first, now)
	require.NoError(t, err)

	_, err = confirmer.Confirm(book.offer, second, now)
	require.ErrorIs(t, err, errs.ErrInsufficientQuantity)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, trade.RequestApproved, second.Status())
	assert.True(t, book.offer.Available().Equal(tonnes(t, 30)))
	assert.True(t, book.conserved())
}

func TestPurchaseConfirmer_RequiresApprovalForOlives(t *testing.T) {
	confirmer := services.NewPurchaseConfirmer()
	book := newOfferBook(t, 100)
	r, err := book.request(3, 40)
	require.NoError(t, err)

	_, err = confirmer.Confirm(book.offer, r, now)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, book.offer.Available().Equal(tonnes(t, 100)))
	assert.Equal(t, trade.RequestPending, r.Status())
}

func TestPurchaseConfirmer_CancelledOfferNeverCloses(t *testing.T) {
	confirmer := services.NewPurchaseConfirmer()
	book := newOfferBook(t, 40)
	r, err := book.request(3, 40)
	require.NoError(t, err)
	require.NoError(t, r.Approve(now))
	_, err = book.offer.Cancel(now)
	require.NoError(t, err)

	_, err = confirmer.Confirm(book.offer, r, now)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, trade.OfferCancelled, book.offer.Status())
	assert.Equal(t, trade.RequestApproved, r.Status())
}

func TestPurchaseConfirmer_Transfers(t *testing.T) {
	confirmer := services.NewPurchaseConfirmer()

	t.Run("olives become purchased olives of the buying mill", func(t *testing.T) {
		book := newOfferBook(t, 100)
		r, err := book.request(3, 40)
		require.NoError(t, err)
		harvest, err := good.NewHarvest(2, now, tonnes(t, 100), "Chetoui")
		require.NoError(t, err)

		_, err = confirmer.OliveTransfer(r, harvest, now)
		require.ErrorIs(t, err, errs.ErrConflict)

		require.NoError(t, r.Approve(now))
		_, err = confirmer.Confirm(book.offer, r, now)
		require.NoError(t, err)

		olives, err := confirmer.OliveTransfer(r, harvest, now)
		require.NoError(t, err)
		assert.Equal(t, kernel.ID(3), olives.MillID())
		assert.Equal(t, r.ID(), olives.RequestID())
		assert.Equal(t, "Chetoui", olives.Variety())
		assert.True(t, olives.Quantity().Equal(tonnes(t, 40)))
	})

	t.Run("oil becomes a bought product of the buyer", func(t *testing.T) {
		liters := func(v int64) kernel.Quantity {
			q, err := kernel.NewQuantity(decimal.NewFromInt(v), kernel.Liters)
			require.NoError(t, err)
			return q
		}
		mother, err := good.NewExtractedProduct(9, kernel.MillParty, liters(500), now)
		require.NoError(t, err)
		require.NoError(t, mother.AssignIdentity(21))

		offer, err := trade.NewOffer(trade.Oil, mother.ID(), millParty(t, 3), liters(100), euros(t), now)
		require.NoError(t, err)
		require.NoError(t, offer.AssignIdentity(30))
		consumer, err := kernel.NewConsumer(kernel.NewUUID())
		require.NoError(t, err)
		r, err := trade.NewRequest(offer, consumer, liters(20), euros(t), now)
		require.NoError(t, err)
		require.NoError(t, r.AssignIdentity(31))

		_, err = confirmer.Confirm(offer, r, now)
		require.NoError(t, err)

		product, err := confirmer.OilTransfer(r, mother, now)
		require.NoError(t, err)
		assert.Equal(t, good.Buying, product.Cause())
		assert.Equal(t, kernel.ID(21), *product.MotherID())
		holder, ok := product.AcquiredBy()
		require.True(t, ok)
		assert.True(t, holder.IsEqual(consumer))
	})
}
