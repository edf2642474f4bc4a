package queries_test

import (
	"context"
	"testing"
	"time"

	"oliveflow/internal/adapters/out/postgres/facilityrepo"
	"oliveflow/internal/adapters/out/postgres/goodrepo"
	"oliveflow/internal/adapters/out/postgres/lineagerepo"
	"oliveflow/internal/adapters/out/postgres/pgtest"
	"oliveflow/internal/adapters/out/postgres/traderepo"
	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type noTracking struct{}

func (noTracking) TrackAggregate(kernel.ID, any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	day      time.Time
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.day = time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(
		"oil_products", "offers", "requests", "harvests", "olive_groves",
		"oil_mills", "machines", "storage_areas",
	))
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) quantity(v string, unit kernel.Unit) kernel.Quantity {
	q, err := kernel.NewQuantity(decimal.RequireFromString(v), unit)
	suite.Require().NoError(err)
	return q
}

func (suite *QueriesIntegrationTestSuite) price() kernel.Money {
	m, err := kernel.NewMoney(decimal.NewFromInt(12), kernel.TunisianDinar)
	suite.Require().NoError(err)
	return m
}

func (suite *QueriesIntegrationTestSuite) TestProductLineage_WalksMotherChain() {
	ctx := context.Background()
	products := goodrepo.NewGormOilProductRepository(suite.database.DB, noTracking{})

	mother, err := good.NewExtractedProduct(8, kernel.FarmerParty, suite.quantity("300", kernel.Liters), suite.day)
	suite.Require().NoError(err)
	suite.Require().NoError(products.Add(ctx, mother))

	mill, err := kernel.NewMill(4)
	suite.Require().NoError(err)
	child, err := good.NewBoughtProduct(mother, mill, suite.quantity("120", kernel.Liters), suite.day.AddDate(0, 0, 2))
	suite.Require().NoError(err)
	suite.Require().NoError(products.Add(ctx, child))

	consumer, err := kernel.NewConsumer(kernel.NewUUID())
	suite.Require().NoError(err)
	grandchild, err := good.NewBoughtProduct(child, consumer, suite.quantity("5", kernel.Liters), suite.day.AddDate(0, 0, 9))
	suite.Require().NoError(err)
	suite.Require().NoError(products.Add(ctx, grandchild))

	handler := queries.NewProductLineageQueryHandler(suite.database.DB, lineagerepo.NewGormLineageReader(suite.database.DB))
	query, err := queries.NewProductLineageQuery(grandchild.ID())
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("B-20241114-000003", result[0].Code.String())
	suite.Equal("B-20241107-000002", result[1].Code.String())
	suite.Equal("E-20241105-000001", result[2].Code.String())
	suite.Equal(good.Extraction, result[2].Cause)
	suite.Require().NotNil(result[2].OperationID)
	suite.Equal(kernel.ID(8), *result[2].OperationID)
	suite.True(result[1].Produced.Equal(suite.quantity("120", kernel.Liters)))
	suite.Require().NotNil(result[0].Holder)
	suite.True(result[0].Holder.IsEqual(consumer))
	suite.Require().NotNil(result[1].Holder)
	suite.True(result[1].Holder.IsEqual(mill))
}

func (suite *QueriesIntegrationTestSuite) TestProductLineage_MissingProduct() {
	handler := queries.NewProductLineageQueryHandler(suite.database.DB, lineagerepo.NewGormLineageReader(suite.database.DB))
	query, err := queries.NewProductLineageQuery(404)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// 100 t offered, 40 t then 60 t bought, offer closed.
func (suite *QueriesIntegrationTestSuite) TestOfferBalance_SellOutScenario() {
	ctx := context.Background()
	offers := traderepo.NewGormOfferRepository(suite.database.DB, noTracking{})
	requests := traderepo.NewGormRequestRepository(suite.database.DB, noTracking{})

	seller, err := kernel.NewFarmer(kernel.NewUUID())
	suite.Require().NoError(err)
	offer, err := trade.NewOffer(trade.Olive, 1, seller, suite.quantity("100", kernel.Tonnes), suite.price(), suite.day)
	suite.Require().NoError(err)
	suite.Require().NoError(offers.Add(ctx, offer))

	for i, amount := range []string{"40", "60"} {
		buyer, err := kernel.NewMill(kernel.ID(i + 1))
		suite.Require().NoError(err)
		current, err := offers.Get(ctx, offer.ID())
		suite.Require().NoError(err)

		request, err := trade.NewRequest(current, buyer, suite.quantity(amount, kernel.Tonnes), suite.price(), suite.day)
		suite.Require().NoError(err)
		suite.Require().NoError(request.Approve(suite.day))
		left, err := current.Reserve(request.Requested(), suite.day)
		suite.Require().NoError(err)
		if left.IsZero() {
			suite.Require().NoError(current.Close(suite.day))
		}
		suite.Require().NoError(request.MarkBought(suite.day))
		suite.Require().NoError(requests.Add(ctx, request))
		suite.Require().NoError(offers.Update(ctx, current))
	}

	query, err := queries.NewOfferBalanceQuery(offer.ID())
	suite.Require().NoError(err)
	balance, err := queries.NewOfferBalanceQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(trade.OfferClosed, balance.Status)
	suite.True(balance.Available.IsZero())
	suite.True(balance.Bought.Equal(suite.quantity("100", kernel.Tonnes)))
	suite.True(balance.Conserved)
	suite.Equal(offer.Code(), balance.Code)

	unbalanced, err := queries.NewUnbalancedOffersQueryHandler(suite.database.DB).
		Handle(ctx, queries.NewUnbalancedOffersQuery())
	suite.Require().NoError(err)
	suite.Empty(unbalanced)
}

func (suite *QueriesIntegrationTestSuite) TestOfferBalance_PendingRequestsDoNotCount() {
	ctx := context.Background()
	offers := traderepo.NewGormOfferRepository(suite.database.DB, noTracking{})
	requests := traderepo.NewGormRequestRepository(suite.database.DB, noTracking{})

	seller, err := kernel.NewFarmer(kernel.NewUUID())
	suite.Require().NoError(err)
	offer, err := trade.NewOffer(trade.Olive, 1, seller, suite.quantity("10", kernel.Tonnes), suite.price(), suite.day)
	suite.Require().NoError(err)
	suite.Require().NoError(offers.Add(ctx, offer))
	buyer, err := kernel.NewMill(2)
	suite.Require().NoError(err)
	request, err := trade.NewRequest(offer, buyer, suite.quantity("4", kernel.Tonnes), suite.price(), suite.day)
	suite.Require().NoError(err)
	suite.Require().NoError(requests.Add(ctx, request))

	query, err := queries.NewOfferBalanceQuery(offer.ID())
	suite.Require().NoError(err)
	balance, err := queries.NewOfferBalanceQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(balance.Bought.IsZero())
	suite.True(balance.Available.Equal(suite.quantity("10", kernel.Tonnes)))
	suite.True(balance.Conserved)
}

func (suite *QueriesIntegrationTestSuite) TestUnbalancedOffers_ReportsDrift() {
	ctx := context.Background()
	offers := traderepo.NewGormOfferRepository(suite.database.DB, noTracking{})
	seller, err := kernel.NewFarmer(kernel.NewUUID())
	suite.Require().NoError(err)
	for range 2 {
		offer, err := trade.NewOffer(trade.Olive, 1, seller, suite.quantity("10", kernel.Tonnes), suite.price(), suite.day)
		suite.Require().NoError(err)
		suite.Require().NoError(offers.Add(ctx, offer))
	}
	suite.Require().NoError(suite.database.DB.Exec("UPDATE offers SET available_value = 7 WHERE id = 2").Error)

	unbalanced, err := queries.NewUnbalancedOffersQueryHandler(suite.database.DB).
		Handle(ctx, queries.NewUnbalancedOffersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(unbalanced, 1)
	suite.Equal(kernel.ID(2), unbalanced[0].OfferID)
	suite.False(unbalanced[0].Conserved)
	suite.True(unbalanced[0].Available.Equal(suite.quantity("7", kernel.Tonnes)))
}

func (suite *QueriesIntegrationTestSuite) TestOfferBalance_MissingOffer() {
	query, err := queries.NewOfferBalanceQuery(77)
	suite.Require().NoError(err)

	_, err = queries.NewOfferBalanceQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestHandlers_InvalidQuery() {
	_, err := queries.NewOfferBalanceQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.OfferBalanceQuery{})
	suite.ErrorIs(err, queries.ErrOfferBalanceQueryIsNotConstructed)

	_, err = queries.NewUnbalancedOffersQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.UnbalancedOffersQuery{})
	suite.ErrorIs(err, queries.ErrUnbalancedOffersQueryIsNotConstructed)

	_, err = queries.NewProductLineageQueryHandler(suite.database.DB, lineagerepo.NewGormLineageReader(suite.database.DB)).
		Handle(context.Background(), queries.ProductLineageQuery{})
	suite.ErrorIs(err, queries.ErrProductLineageQueryIsNotConstructed)
}

func (suite *QueriesIntegrationTestSuite) dinars(v int64) kernel.Money {
	m, err := kernel.NewMoney(decimal.NewFromInt(v), kernel.TunisianDinar)
	suite.Require().NoError(err)
	return m
}

// seedMarket stores three available offers and a cancelled one:
//
//	1: olive, 10 t at 900, pickup, harvest without variety of a chemlali grove
//	2: olive, 30 t at 1200, delivered, chetoui harvest
//	3: oil, 100 l at 15, no transport
//	4: olive, cancelled
func (suite *QueriesIntegrationTestSuite) seedMarket() {
	ctx := context.Background()
	farmerID := kernel.NewUUID()
	farmer, err := kernel.NewFarmer(farmerID)
	suite.Require().NoError(err)

	grove, err := facility.NewOliveGrove("Sfax east", farmerID, "chemlali")
	suite.Require().NoError(err)
	suite.Require().NoError(facilityrepo.NewGormGroveRepository(suite.database.DB, noTracking{}).Add(ctx, grove))

	harvests := goodrepo.NewGormHarvestRepository(suite.database.DB, noTracking{})
	plain, err := good.NewHarvest(grove.ID(), suite.day, suite.quantity("50", kernel.Tonnes), "")
	suite.Require().NoError(err)
	suite.Require().NoError(harvests.Add(ctx, plain))
	chetoui, err := good.NewHarvest(grove.ID(), suite.day, suite.quantity("50", kernel.Tonnes), "chetoui")
	suite.Require().NoError(err)
	suite.Require().NoError(harvests.Add(ctx, chetoui))

	mill, err := kernel.NewMill(4)
	suite.Require().NoError(err)

	offers := traderepo.NewGormOfferRepository(suite.database.DB, noTracking{})
	add := func(kind trade.Kind, goodID kernel.ID, seller kernel.Party, q kernel.Quantity, price int64, transport trade.Transport, days int) *trade.Offer {
		offer, err := trade.NewOffer(kind, goodID, seller, q, suite.dinars(price), suite.day.AddDate(0, 0, days))
		suite.Require().NoError(err)
		if transport != trade.UnspecifiedTransport {
			suite.Require().NoError(offer.ArrangeTransport(transport))
		}
		suite.Require().NoError(offers.Add(ctx, offer))
		return offer
	}
	add(trade.Olive, plain.ID(), farmer, suite.quantity("10", kernel.Tonnes), 900, trade.Pickup, 0)
	add(trade.Olive, chetoui.ID(), farmer, suite.quantity("30", kernel.Tonnes), 1200, trade.Delivered, 1)
	add(trade.Oil, 5, mill, suite.quantity("100", kernel.Liters), 15, trade.UnspecifiedTransport, 2)
	cancelled := add(trade.Olive, plain.ID(), farmer, suite.quantity("5", kernel.Tonnes), 800, trade.Pickup, 3)
	_, err = cancelled.Cancel(suite.day.AddDate(0, 0, 4))
	suite.Require().NoError(err)
	suite.Require().NoError(offers.Update(ctx, cancelled))
}

func (suite *QueriesIntegrationTestSuite) TestSearchOffers() {
	suite.seedMarket()
	bound := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	tests := []struct {
		name   string
		filter queries.OfferFilter
		sort   queries.OfferSort
		limit  int
		offset int
		want   []kernel.ID
	}{
		{name: "newest first", limit: 50, want: []kernel.ID{3, 2, 1}},
		{name: "page", limit: 1, offset: 1, want: []kernel.ID{2}},
		{name: "olives by price", filter: queries.OfferFilter{Kind: trade.Olive}, sort: queries.PriceAscending, limit: 50, want: []kernel.ID{1, 2}},
		{name: "largest first", sort: queries.QuantityDescending, limit: 50, want: []kernel.ID{3, 2, 1}},
		{name: "price range", filter: queries.OfferFilter{MinPrice: bound(100), MaxPrice: bound(1000)}, limit: 50, want: []kernel.ID{1}},
		{name: "quantity floor", filter: queries.OfferFilter{Kind: trade.Olive, MinQuantity: bound(20)}, limit: 50, want: []kernel.ID{2}},
		{name: "quantity ceiling", filter: queries.OfferFilter{MaxQuantity: bound(30)}, sort: queries.PriceDescending, limit: 50, want: []kernel.ID{2, 1}},
		{name: "delivered", filter: queries.OfferFilter{Transport: trade.Delivered}, limit: 50, want: []kernel.ID{2}},
		{name: "variety of the grove", filter: queries.OfferFilter{Variety: "Chemlali"}, limit: 50, want: []kernel.ID{1}},
		{name: "variety of the harvest", filter: queries.OfferFilter{Variety: "chetoui"}, limit: 50, want: []kernel.ID{2}},
		{name: "nothing matches", filter: queries.OfferFilter{Variety: "koroneiki"}, limit: 50, want: []kernel.ID{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			query, err := queries.NewSearchOffersQuery(tt.filter, tt.sort, tt.limit, tt.offset)
			suite.Require().NoError(err)

			listings, err := queries.NewSearchOffersQueryHandler(suite.database.DB).Handle(context.Background(), query)

			suite.Require().NoError(err)
			ids := make([]kernel.ID, 0, len(listings))
			for _, l := range listings {
				ids = append(ids, l.OfferID)
			}
			suite.Equal(tt.want, ids)
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestSearchOffers_Listing() {
	suite.seedMarket()
	query, err := queries.NewSearchOffersQuery(queries.OfferFilter{Transport: trade.Pickup}, queries.NewestFirst, 10, 0)
	suite.Require().NoError(err)

	listings, err := queries.NewSearchOffersQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(listings, 1)
	l := listings[0]
	suite.Equal(trade.Olive, l.Kind)
	suite.Equal(kernel.FarmerParty, l.Seller.Kind())
	suite.Equal("chemlali", l.Variety)
	suite.Equal(trade.Pickup, l.Transport)
	suite.True(l.Available.Equal(suite.quantity("10", kernel.Tonnes)))
	suite.True(l.Price.Amount().Equal(decimal.NewFromInt(900)))
	suite.Equal("olive selling-20241105-000001", l.Code.String())
}

func (suite *QueriesIntegrationTestSuite) TestMachines() {
	ctx := context.Background()
	mill, err := facility.NewOilMill("Huilerie Zitouna", kernel.NewUUID(), false, false)
	suite.Require().NoError(err)
	suite.Require().NoError(facilityrepo.NewGormMillRepository(suite.database.DB, noTracking{}).Add(ctx, mill))

	machines := facilityrepo.NewGormMachineRepository(suite.database.DB, noTracking{})
	purchased := time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC)
	for _, ref := range []string{"PR-1", "DEC-40"} {
		m, err := facility.NewMachine(mill.ID(), ref, "Pieralisi", "Pieralisi SpA", purchased, 4000, facility.ContinuousTwoPhases)
		suite.Require().NoError(err)
		suite.Require().NoError(machines.Add(ctx, m))
	}

	list, err := queries.NewListMachinesQuery(mill.ID())
	suite.Require().NoError(err)
	items, err := queries.NewListMachinesQueryHandler(suite.database.DB).Handle(ctx, list)
	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("PR-1", items[0].Reference)
	suite.Equal(facility.ContinuousTwoPhases, items[1].Type)

	get, err := queries.NewGetMachineQuery(items[1].ID)
	suite.Require().NoError(err)
	detail, err := queries.NewGetMachineQueryHandler(suite.database.DB).Handle(ctx, get)
	suite.Require().NoError(err)
	suite.Equal("Huilerie Zitouna", detail.MillName)
	suite.Equal("DEC-40", detail.Reference)
	suite.True(purchased.Equal(detail.PurchaseDate))

	unknownMill, err := queries.NewListMachinesQuery(99)
	suite.Require().NoError(err)
	_, err = queries.NewListMachinesQueryHandler(suite.database.DB).Handle(ctx, unknownMill)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	unknownMachine, err := queries.NewGetMachineQuery(99)
	suite.Require().NoError(err)
	_, err = queries.NewGetMachineQueryHandler(suite.database.DB).Handle(ctx, unknownMachine)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestStorageAreas_ByOwner() {
	ctx := context.Background()
	areas := facilityrepo.NewGormStorageAreaRepository(suite.database.DB, noTracking{})
	mill, err := kernel.NewMill(3)
	suite.Require().NoError(err)
	farmer, err := kernel.NewFarmer(kernel.NewUUID())
	suite.Require().NoError(err)

	for _, owner := range []kernel.Party{mill, farmer, mill} {
		area, err := facility.NewStorageArea(owner, "cellar", "Route de Sfax km 3",
			&facility.Coordinates{Latitude: 34.74, Longitude: 10.76}, "tank", 2)
		suite.Require().NoError(err)
		suite.Require().NoError(areas.Add(ctx, area))
	}

	query, err := queries.NewListStorageAreasQuery(mill)
	suite.Require().NoError(err)
	views, err := queries.NewListStorageAreasQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal([]kernel.ID{1, 3}, []kernel.ID{views[0].ID, views[1].ID})
	suite.Require().NotNil(views[0].Location)

	query, err = queries.NewListStorageAreasQuery(farmer)
	suite.Require().NoError(err)
	views, err = queries.NewListStorageAreasQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.True(views[0].Owner.IsEqual(farmer))
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
