package http_test

import (
	"encoding/json"
	"net/http"
	"time"

	httpadapter "oliveflow/internal/adapters/in/http"
	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *ServerTestSuite) TestRegisterMachine_Created() {
	s.role = "mill manager"
	s.registerMachine.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterMachineCommand) bool {
		return cmd.Type() == facility.SuperPress &&
			cmd.Capacity() == 1200 &&
			cmd.PurchaseDate().Equal(time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC))
	})).Return(commands.Created{ID: 12}, nil).Once()
	body := `{"reference":"SP-2","brand":"Alfa Laval","purchaseDate":"2019-03-04","capacity":1200,"type":"super press"}`

	rec := s.do(http.MethodPost, "/api/v1/machines", body, true)

	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.registerMachine.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestRegisterMachine_UnknownType() {
	body := `{"reference":"SP-2","purchaseDate":"2019-03-04","capacity":1200,"type":"hydraulic"}`

	rec := s.do(http.MethodPost, "/api/v1/machines", body, true)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.registerMachine.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestRetireMachine_NoContent() {
	s.role = "mill manager"
	s.retireMachine.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RetireMachineCommand) bool {
		return cmd.MachineID() == 12
	})).Return(nil).Once()

	rec := s.do(http.MethodDelete, "/api/v1/machines/12", "", true)

	s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestMachineQueries() {
	s.listMachines.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListMachinesQuery) bool {
		return q.MillID() == 3
	})).Return([]queries.MachineListItem{{ID: 12, Reference: "SP-2", Type: facility.SuperPress, Capacity: 1200}}, nil).Once()
	s.getMachine.On("Handle", mock.Anything, mock.Anything).Return(queries.MachineDetail{
		ID:           12,
		MillID:       3,
		MillName:     "Huilerie Zitouna",
		Reference:    "SP-2",
		PurchaseDate: time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC),
		Capacity:     1200,
		Type:         facility.SuperPress,
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/mills/3/machines", "", false)
	s.Equal(http.StatusOK, rec.Code)
	var items []httpadapter.MachineListItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	s.Equal([]httpadapter.MachineListItem{{ID: 12, Reference: "SP-2", Type: "super press", Capacity: 1200}}, items)

	rec = s.do(http.MethodGet, "/api/v1/machines/12", "", false)
	s.Equal(http.StatusOK, rec.Code)
	var machine httpadapter.Machine
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &machine))
	s.Equal("Huilerie Zitouna", machine.MillName)
	s.Equal("2019-03-04", machine.PurchaseDate)
}

func (s *ServerTestSuite) TestRegisterStorageArea_Created() {
	s.registerStorageArea.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterStorageAreaCommand) bool {
		return cmd.ContainerCount() == 20 && cmd.Location() != nil && cmd.Location().Latitude == 35.5
	})).Return(commands.Created{ID: 6}, nil).Once()
	body := `{"localType":"shed","address":"Douar El Ain","location":{"latitude":35.5,"longitude":10.1},"containerType":"jar","containerCount":20}`

	rec := s.do(http.MethodPost, "/api/v1/storage-areas", body, true)

	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.registerStorageArea.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestListStorageAreas() {
	farmer, err := kernel.NewFarmer(s.actor)
	s.Require().NoError(err)
	s.listStorageAreas.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListStorageAreasQuery) bool {
		return q.Owner().IsEqual(farmer)
	})).Return([]queries.StorageAreaView{{
		ID:             6,
		Owner:          farmer,
		LocalType:      "shed",
		Address:        "Douar El Ain",
		ContainerType:  "jar",
		ContainerCount: 20,
	}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/storage-areas?farmerId="+s.actor.String(), "", false)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	var areas []httpadapter.StorageArea
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &areas))
	s.Require().Len(areas, 1)
	s.Equal("farmer", areas[0].Owner.Kind)
	s.Nil(areas[0].Location)
}

func (s *ServerTestSuite) TestListStorageAreas_ExactlyOneOwner() {
	s.failures.On("OperationFailed", "ListStorageAreas", mock.Anything).Return().Twice()

	rec := s.do(http.MethodGet, "/api/v1/storage-areas", "", false)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/storage-areas?millId=3&farmerId="+s.actor.String(), "", false)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.listStorageAreas.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
	s.failures.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestSearchOffers() {
	available, err := kernel.NewQuantity(decimal.NewFromInt(30), kernel.Tonnes)
	s.Require().NoError(err)
	price, err := kernel.NewMoney(decimal.NewFromInt(1200), kernel.TunisianDinar)
	s.Require().NoError(err)
	seller, err := kernel.NewFarmer(s.actor)
	s.Require().NoError(err)

	s.searchOffers.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SearchOffersQuery) bool {
		f := q.Filter()
		return f.Kind == trade.Olive &&
			f.MinPrice != nil && f.MinPrice.Equal(decimal.NewFromInt(100)) &&
			f.MaxPrice == nil &&
			f.Transport == trade.Delivered &&
			f.Variety == "chetoui" &&
			q.Sort() == queries.PriceAscending &&
			q.Limit() == 10 && q.Offset() == 20
	})).Return([]queries.OfferListing{{
		OfferID:   2,
		Code:      "olive selling-20241106-000002",
		Kind:      trade.Olive,
		GoodID:    7,
		Seller:    seller,
		Available: available,
		Price:     price,
		Transport: trade.Delivered,
		Variety:   "chetoui",
	}}, nil).Once()

	rec := s.do(http.MethodGet,
		"/api/v1/offers?kind=olive&minPrice=100&transport=delivered&variety=chetoui&sort=price_asc&limit=10&offset=20", "", false)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	var listings []httpadapter.OfferListing
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listings))
	s.Require().Len(listings, 1)
	s.Equal("delivered", listings[0].Transport)
	s.Equal(httpadapter.Money{Amount: "1200", Currency: price.Currency().String()}, listings[0].Price)
	s.searchOffers.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestSearchOffers_Defaults() {
	s.searchOffers.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SearchOffersQuery) bool {
		return q.Filter() == (queries.OfferFilter{}) &&
			q.Sort() == queries.NewestFirst &&
			q.Limit() == 50 && q.Offset() == 0
	})).Return([]queries.OfferListing{}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/offers", "", false)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *ServerTestSuite) TestSearchOffers_RejectedByDocument() {
	for _, path := range []string{
		"/api/v1/offers?limit=101",
		"/api/v1/offers?offset=-1",
		"/api/v1/offers?sort=cheapest",
		"/api/v1/offers?minPrice=ten",
	} {
		rec := s.do(http.MethodGet, path, "", false)
		s.Equal(http.StatusBadRequest, rec.Code, path)
	}
	s.searchOffers.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}
