package good_test

import (
	"testing"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var harvestDay = time.Date(2024, time.November, 3, 9, 0, 0, 0, time.UTC)

func qty(t *testing.T, v string, unit kernel.Unit) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.RequireFromString(v), unit)
	require.NoError(t, err)
	return q
}

func TestStock(t *testing.T) {
	s, err := good.NewStock(qty(t, "100", kernel.Tonnes))
	require.NoError(t, err)

	t.Run("allocation is all or nothing", func(t *testing.T) {
		_, err := s.Allocate(qty(t, "101", kernel.Tonnes))

		require.ErrorIs(t, err, errs.ErrInsufficientQuantity)
		assert.Equal(t, "100", s.Remaining().Value().String())
	})

	t.Run("release cannot exceed what was allocated", func(t *testing.T) {
		allocated, err := s.Allocate(qty(t, "30", kernel.Tonnes))
		require.NoError(t, err)
		assert.Equal(t, "70", allocated.Remaining().Value().String())

		_, err = allocated.Release(qty(t, "31", kernel.Tonnes))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		released, err := allocated.Release(qty(t, "30", kernel.Tonnes))
		require.NoError(t, err)
		assert.True(t, released.Remaining().Equal(s.Initial()))
	})

	t.Run("zero initial quantity is rejected", func(t *testing.T) {
		_, err := good.NewStock(qty(t, "0", kernel.Tonnes))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("restored remaining above initial is rejected", func(t *testing.T) {
		_, err := good.RestoreStock(qty(t, "10", kernel.Tonnes), qty(t, "11", kernel.Tonnes))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestHarvest(t *testing.T) {
	t.Run("code is stamped once from the harvest date", func(t *testing.T) {
		h, err := good.NewHarvest(4, harvestDay, qty(t, "12.5", kernel.Tonnes), "Chetoui")
		require.NoError(t, err)
		assert.True(t, h.Code().IsZero())

		require.NoError(t, h.AssignIdentity(42))
		assert.Equal(t, kernel.Code("harvest-20241103-000042"), h.Code())

		require.ErrorIs(t, h.AssignIdentity(43), errs.ErrConflict)
		assert.Equal(t, kernel.ID(42), h.ID())
	})

	t.Run("missing fields are joined", func(t *testing.T) {
		_, err := good.NewHarvest(0, time.Time{}, qty(t, "1", kernel.Tonnes), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "grove")
		assert.Contains(t, err.Error(), "harvest date")
	})

	t.Run("restore keeps the remaining quantity", func(t *testing.T) {
		h, err := good.RestoreHarvest(7, "harvest-20241103-000007", 4, harvestDay, "Chemlali",
			qty(t, "10", kernel.Tonnes), qty(t, "4", kernel.Tonnes))
		require.NoError(t, err)

		require.ErrorIs(t, h.Allocate(qty(t, "5", kernel.Tonnes)), errs.ErrInsufficientQuantity)
		require.NoError(t, h.Allocate(qty(t, "4", kernel.Tonnes)))
		assert.True(t, h.Remaining().IsZero())
	})
}

func TestPurchasedOlive_Consume(t *testing.T) {
	p, err := good.NewPurchasedOlive(3, 9, qty(t, "40", kernel.Tonnes), harvestDay, "Chetoui")
	require.NoError(t, err)
	assert.False(t, p.IsConsumed())

	require.NoError(t, p.Consume(11))
	assert.Equal(t, kernel.ID(11), *p.OperationID())

	err = p.Consume(12)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, kernel.ID(11), *p.OperationID())
}

func TestOilProduct(t *testing.T) {
	t.Run("extracted oil is tagged with its cause", func(t *testing.T) {
		p, err := good.NewExtractedProduct(5, kernel.FarmerParty, qty(t, "800", kernel.Liters), harvestDay)
		require.NoError(t, err)
		require.NoError(t, p.AssignIdentity(1))

		assert.Equal(t, kernel.Code("E-20241103-000001"), p.Code())
		assert.Equal(t, good.NotDefined, p.Quality())
		assert.Nil(t, p.MotherID())
		_, acquired := p.AcquiredBy()
		assert.False(t, acquired)
	})

	t.Run("extracted oil cannot belong to a consumer", func(t *testing.T) {
		_, err := good.NewExtractedProduct(5, kernel.ConsumerParty, qty(t, "1", kernel.Liters), harvestDay)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("bought oil points at its mother", func(t *testing.T) {
		mother, err := good.NewExtractedProduct(5, kernel.MillParty, qty(t, "800", kernel.Liters), harvestDay)
		require.NoError(t, err)
		require.NoError(t, mother.AssignIdentity(1))
		require.NoError(t, mother.ApplyAnalysis(good.ExtraVirgin))

		buyer, err := kernel.NewConsumer(kernel.NewUUID())
		require.NoError(t, err)
		p, err := good.NewBoughtProduct(mother, buyer, qty(t, "20", kernel.Liters), harvestDay.AddDate(0, 1, 0))
		require.NoError(t, err)
		require.NoError(t, p.AssignIdentity(2))

		assert.Equal(t, kernel.Code("B-20241203-000002"), p.Code())
		assert.Equal(t, kernel.ID(1), *p.MotherID())
		assert.Equal(t, kernel.ConsumerParty, p.OwnerCategory())
		assert.Equal(t, good.ExtraVirgin, p.Quality())
		owner, ok := p.AcquiredBy()
		require.True(t, ok)
		assert.True(t, owner.IsEqual(buyer))
	})

	t.Run("a product is packaged once", func(t *testing.T) {
		p, err := good.NewExtractedProduct(5, kernel.MillParty, qty(t, "1", kernel.Liters), harvestDay)
		require.NoError(t, err)

		require.NoError(t, p.MarkPackaged())
		require.ErrorIs(t, p.MarkPackaged(), errs.ErrConflict)
	})

	t.Run("restore round trip", func(t *testing.T) {
		mill, err := kernel.NewMill(3)
		require.NoError(t, err)
		state := good.OilProductState{
			ID:             9,
			Code:           "B-20241203-000009",
			Cause:          good.Buying,
			MotherID:       kernel.OptionalID(1),
			OwnerCategory:  kernel.MillParty,
			AcquiredBy:     &mill,
			ProductionDate: harvestDay,
			Produced:       qty(t, "50", kernel.Liters),
			Remaining:      qty(t, "20", kernel.Liters),
			Quality:        good.Virgin,
			IsAnalysed:     true,
		}

		p, err := good.RestoreOilProduct(state)
		require.NoError(t, err)

		assert.Equal(t, state.Code, p.Code())
		assert.Equal(t, "20", p.Remaining().Value().String())
		assert.Equal(t, good.Virgin, p.Quality())
	})
}

func TestParseCreationCauseAndQuality(t *testing.T) {
	c, err := good.ParseCreationCause("St")
	require.NoError(t, err)
	assert.Equal(t, good.Storage, c)

	_, err = good.ParseCreationCause("X")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	q, err := good.ParseQuality("EVOO")
	require.NoError(t, err)
	assert.Equal(t, good.ExtraVirgin, q)
	assert.Equal(t, "L", good.Lampante.String())
}
