package commands_test

import (
	"testing"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/core/domain/model/trade"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var harvestDay = time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func tonnes(t *testing.T, v int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(v), kernel.Tonnes)
	require.NoError(t, err)
	return q
}

func liters(t *testing.T, v int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(v), kernel.Liters)
	require.NoError(t, err)
	return q
}

func dinars(t *testing.T, v int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.NewFromInt(v), kernel.TunisianDinar)
	require.NoError(t, err)
	return m
}

func grove(t *testing.T, id kernel.ID, farmer kernel.Actor) *facility.OliveGrove {
	t.Helper()
	g, err := facility.RestoreOliveGrove(id, "Sidi Bouzid south", farmer.ID(), "Chemlali")
	require.NoError(t, err)
	return g
}

func mill(t *testing.T, id kernel.ID, manager kernel.Actor) *facility.OilMill {
	t.Helper()
	m, err := facility.RestoreOilMill(id, "Huilerie Zitouna", manager.ID(), true, true)
	require.NoError(t, err)
	return m
}

func harvest(t *testing.T, id kernel.ID, groveID kernel.ID, initial int64) *good.Harvest {
	t.Helper()
	h, err := good.NewHarvest(groveID, harvestDay, tonnes(t, initial), "Chemlali")
	require.NoError(t, err)
	require.NoError(t, h.AssignIdentity(id))
	return h
}

func oliveOffer(t *testing.T, id kernel.ID, seller kernel.Actor, goodID kernel.ID, initial int64) *trade.Offer {
	t.Helper()
	party, err := kernel.NewFarmer(seller.ID())
	require.NoError(t, err)
	o, err := trade.NewOffer(trade.Olive, goodID, party, tonnes(t, initial), dinars(t, 900), harvestDay)
	require.NoError(t, err)
	require.NoError(t, o.AssignIdentity(id))
	return o
}

func oliveRequest(t *testing.T, id kernel.ID, offer *trade.Offer, millID kernel.ID, requested int64) *trade.Request {
	t.Helper()
	buyer, err := kernel.NewMill(millID)
	require.NoError(t, err)
	r, err := trade.NewRequest(offer, buyer, tonnes(t, requested), offer.Price(), harvestDay)
	require.NoError(t, err)
	require.NoError(t, r.AssignIdentity(id))
	return r
}

func anyEvent() any {
	return mock.AnythingOfType("notification.Event")
}

func serviceRequest(
	t *testing.T,
	id kernel.ID,
	kind service.Kind,
	farmer kernel.Actor,
	subject kernel.ID,
	details service.Details,
) *service.Request {
	t.Helper()
	r, err := service.NewRequest(kind, farmer.ID(), subject, tonnes(t, 10), dinars(t, 300), harvestDay, details)
	require.NoError(t, err)
	require.NoError(t, r.AssignIdentity(id))
	return r
}

func serviceOffer(t *testing.T, id kernel.ID, request *service.Request, provider *facility.OilMill) *service.Offer {
	t.Helper()
	o, err := service.NewOffer(request, provider, dinars(t, 280), harvestDay, false)
	require.NoError(t, err)
	require.NoError(t, o.AssignIdentity(id))
	return o
}

func oilProduct(t *testing.T, id kernel.ID, operationID kernel.ID, produced int64) *good.OilProduct {
	t.Helper()
	p, err := good.NewExtractedProduct(operationID, kernel.FarmerParty, liters(t, produced), harvestDay)
	require.NoError(t, err)
	require.NoError(t, p.AssignIdentity(id))
	return p
}

func storageArea(t *testing.T, id kernel.ID, owner kernel.Party) *facility.StorageArea {
	t.Helper()
	a, err := facility.NewStorageArea(owner, "cellar", "Route de Sfax km 3", nil, "stainless tank", 4)
	require.NoError(t, err)
	require.NoError(t, a.AssignID(id))
	return a
}
