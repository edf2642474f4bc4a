package pgtypes_test

import (
	"testing"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyColumns(t *testing.T) {
	farmer, err := kernel.NewFarmer(kernel.NewUUID())
	require.NoError(t, err)
	mill, err := kernel.NewMill(3)
	require.NoError(t, err)

	for name, party := range map[string]kernel.Party{"farmer": farmer, "mill": mill} {
		t.Run(name, func(t *testing.T) {
			restored, err := pgtypes.PartyFromDomain(party).ToDomain()

			require.NoError(t, err)
			assert.True(t, party.IsEqual(restored))
		})
	}

	t.Run("both references set", func(t *testing.T) {
		c := pgtypes.PartyFromDomain(farmer)
		millID := int64(3)
		c.MillID = &millID

		_, err := c.ToDomain()

		require.Error(t, err)
	})

	t.Run("no party", func(t *testing.T) {
		p, err := pgtypes.OptionalParty(nil).ToOptionalDomain()

		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
