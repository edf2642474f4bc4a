package facility_test

import (
	"testing"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOilMill(t *testing.T) {
	manager := kernel.NewUUID()

	t.Run("should register a mill", func(t *testing.T) {
		m, err := facility.NewOilMill("Huilerie du Sahel", manager, true, false)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.IsManagedBy(manager))
		assert.True(t, m.HasLab())
		assert.False(t, m.HasPackUnit())
		assert.True(t, m.ID().IsZero())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := facility.NewOilMill(" ", kernel.UUID{}, false, false)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should become a party once persisted", func(t *testing.T) {
		m, err := facility.NewOilMill("Huilerie du Sahel", manager, false, true)
		require.NoError(t, err)

		_, err = m.Party()
		require.Error(t, err)

		require.NoError(t, m.AssignID(12))
		p, err := m.Party()
		require.NoError(t, err)
		assert.Equal(t, kernel.ID(12), *p.MillID())

		require.ErrorIs(t, m.AssignID(13), errs.ErrConflict)
	})

	t.Run("nil mill is not constructed", func(t *testing.T) {
		var m *facility.OilMill
		require.ErrorIs(t, m.Validate(), facility.ErrOilMillIsNotConstructed)
	})
}

func TestNewOliveGrove(t *testing.T) {
	farmer := kernel.NewUUID()

	g, err := facility.RestoreOliveGrove(3, "Oued Zarga", farmer, "Chemlali")

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(3), g.ID())
	assert.Equal(t, "Chemlali", g.Variety())
	owner, err := g.Farmer()
	require.NoError(t, err)
	assert.Equal(t, kernel.FarmerParty, owner.Kind())
	assert.True(t, owner.ActorID().IsEqual(farmer))

	_, err = facility.NewOliveGrove("", farmer, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewMachine(t *testing.T) {
	bought := time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should register a machine at a mill", func(t *testing.T) {
		m, err := facility.NewMachine(3, " PX-400 ", "Pieralisi", "Pieralisi SpA", bought, 1500, facility.ContinuousTwoPhases)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "PX-400", m.Reference())
		assert.Equal(t, kernel.ID(3), m.MillID())
		assert.Equal(t, "continuous two phases", m.Type().String())
		assert.True(t, m.ID().IsZero())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := facility.NewMachine(0, "", "", "", time.Time{}, 0, facility.UnknownMachineType)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("is installed at its own mill only", func(t *testing.T) {
		own, err := facility.RestoreOilMill(3, "Huilerie", kernel.NewUUID(), false, false)
		require.NoError(t, err)
		other, err := facility.RestoreOilMill(4, "Huilerie Nord", kernel.NewUUID(), false, false)
		require.NoError(t, err)

		m, err := facility.RestoreMachine(facility.MachineState{
			ID: 9, MillID: 3, Reference: "T-1", PurchaseDate: bought, Capacity: 200, Type: facility.Traditional,
		})
		require.NoError(t, err)

		assert.True(t, m.IsInstalledAt(own))
		assert.False(t, m.IsInstalledAt(other))
		assert.False(t, m.IsInstalledAt(nil))
	})

	t.Run("parses machine types", func(t *testing.T) {
		typ, err := facility.ParseMachineType("super press")
		require.NoError(t, err)
		assert.Equal(t, facility.SuperPress, typ)

		_, err = facility.ParseMachineType("unknown")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewStorageArea(t *testing.T) {
	farmerID := kernel.NewUUID()
	farmer, err := kernel.NewFarmer(farmerID)
	require.NoError(t, err)
	mill, err := kernel.NewMill(3)
	require.NoError(t, err)

	t.Run("owned by a mill", func(t *testing.T) {
		a, err := facility.NewStorageArea(mill, "cellar", "Route de Sousse km 4", nil, "stainless tank", 6)

		require.NoError(t, err)
		assert.True(t, a.IsOwnedBy(mill))
		assert.False(t, a.IsOwnedBy(farmer))
		assert.Nil(t, a.Location())
	})

	t.Run("owned by a farmer with coordinates", func(t *testing.T) {
		a, err := facility.NewStorageArea(farmer, "shed", "Oued Zarga", &facility.Coordinates{Latitude: 36.6, Longitude: 9.4}, "jar", 20)

		require.NoError(t, err)
		assert.True(t, a.IsOwnedBy(farmer))
		require.NotNil(t, a.Location())
		assert.InDelta(t, 36.6, a.Location().Latitude, 1e-9)
	})

	t.Run("consumers do not own storage areas", func(t *testing.T) {
		consumer, err := kernel.NewConsumer(kernel.NewUUID())
		require.NoError(t, err)

		_, err = facility.NewStorageArea(consumer, "shed", "Tunis", nil, "jar", 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("an owner is required", func(t *testing.T) {
		_, err := facility.NewStorageArea(kernel.Party{}, "shed", "Tunis", nil, "jar", 1)
		require.ErrorIs(t, err, kernel.ErrPartyIsNotConstructed)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := facility.NewStorageArea(mill, " ", "", &facility.Coordinates{Latitude: 91}, "", 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
