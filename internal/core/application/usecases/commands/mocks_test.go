package commands_test

import (
	"context"
	"io"

	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *trade.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, o *trade.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.ID) (*trade.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Offer), args.Error(1)
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *trade.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *trade.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.ID) (*trade.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Request), args.Error(1)
}

func (m *MockRequestRepository) ListOpenByOffer(ctx context.Context, offerID kernel.ID) ([]*trade.Request, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Request), args.Error(1)
}

type MockNeedRepository struct{ mock.Mock }

func (m *MockNeedRepository) Add(ctx context.Context, n *trade.Need) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNeedRepository) Update(ctx context.Context, n *trade.Need) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNeedRepository) Get(ctx context.Context, id kernel.ID) (*trade.Need, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Need), args.Error(1)
}

type MockHarvestRepository struct{ mock.Mock }

func (m *MockHarvestRepository) Add(ctx context.Context, h *good.Harvest) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHarvestRepository) Update(ctx context.Context, h *good.Harvest) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHarvestRepository) Get(ctx context.Context, id kernel.ID) (*good.Harvest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*good.Harvest), args.Error(1)
}

type MockPurchasedOliveRepository struct{ mock.Mock }

func (m *MockPurchasedOliveRepository) Add(ctx context.Context, p *good.PurchasedOlive) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchasedOliveRepository) Update(ctx context.Context, p *good.PurchasedOlive) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchasedOliveRepository) Get(ctx context.Context, id kernel.ID) (*good.PurchasedOlive, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*good.PurchasedOlive), args.Error(1)
}

func (m *MockPurchasedOliveRepository) GetByRequest(ctx context.Context, requestID kernel.ID) (*good.PurchasedOlive, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*good.PurchasedOlive), args.Error(1)
}

type MockOilProductRepository struct{ mock.Mock }

func (m *MockOilProductRepository) Add(ctx context.Context, p *good.OilProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockOilProductRepository) Update(ctx context.Context, p *good.OilProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockOilProductRepository) Get(ctx context.Context, id kernel.ID) (*good.OilProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*good.OilProduct), args.Error(1)
}

type MockMillRepository struct{ mock.Mock }

func (m *MockMillRepository) Add(ctx context.Context, mill *facility.OilMill) error {
	args := m.Called(ctx, mill)
	return args.Error(0)
}

func (m *MockMillRepository) Get(ctx context.Context, id kernel.ID) (*facility.OilMill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.OilMill), args.Error(1)
}

func (m *MockMillRepository) GetByManager(ctx context.Context, managerID kernel.UUID) (*facility.OilMill, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.OilMill), args.Error(1)
}

type MockGroveRepository struct{ mock.Mock }

func (m *MockGroveRepository) Add(ctx context.Context, g *facility.OliveGrove) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroveRepository) Get(ctx context.Context, id kernel.ID) (*facility.OliveGrove, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.OliveGrove), args.Error(1)
}

type MockMachineRepository struct{ mock.Mock }

func (m *MockMachineRepository) Add(ctx context.Context, machine *facility.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepository) Get(ctx context.Context, id kernel.ID) (*facility.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Machine), args.Error(1)
}

func (m *MockMachineRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStorageAreaRepository struct{ mock.Mock }

func (m *MockStorageAreaRepository) Add(ctx context.Context, area *facility.StorageArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockStorageAreaRepository) Get(ctx context.Context, id kernel.ID) (*facility.StorageArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.StorageArea), args.Error(1)
}

type MockServiceRequestRepository struct{ mock.Mock }

func (m *MockServiceRequestRepository) Add(ctx context.Context, r *service.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockServiceRequestRepository) Update(ctx context.Context, r *service.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockServiceRequestRepository) Get(ctx context.Context, id kernel.ID) (*service.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Request), args.Error(1)
}

type MockServiceOfferRepository struct{ mock.Mock }

func (m *MockServiceOfferRepository) Add(ctx context.Context, o *service.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockServiceOfferRepository) Update(ctx context.Context, o *service.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockServiceOfferRepository) Get(ctx context.Context, id kernel.ID) (*service.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Offer), args.Error(1)
}

func (m *MockServiceOfferRepository) ListByRequest(ctx context.Context, requestID kernel.ID) ([]*service.Offer, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.Offer), args.Error(1)
}

type MockOperationRepository struct{ mock.Mock }

func (m *MockOperationRepository) Add(ctx context.Context, op *service.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperationRepository) Update(ctx context.Context, op *service.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperationRepository) Get(ctx context.Context, id kernel.ID) (*service.Operation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Operation), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, event notification.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) MarkDelivered(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLineageReader struct{ mock.Mock }

func (m *MockLineageReader) Load(ctx context.Context, productID kernel.ID) (*services.Arena, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Arena), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event notification.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockReportStore struct{ mock.Mock }

func (m *MockReportStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockReportStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockUoW satisfies every unit of work the handlers depend on. Repository
// getters are not recorded; each repository is its own mock, so a call the
// test did not expect fails it.
type MockUoW struct {
	mock.Mock

	offers          *MockOfferRepository
	requests        *MockRequestRepository
	needs           *MockNeedRepository
	harvests        *MockHarvestRepository
	purchasedOlives *MockPurchasedOliveRepository
	oilProducts     *MockOilProductRepository
	mills           *MockMillRepository
	groves          *MockGroveRepository
	machines        *MockMachineRepository
	storageAreas    *MockStorageAreaRepository
	serviceRequests *MockServiceRequestRepository
	serviceOffers   *MockServiceOfferRepository
	operations      *MockOperationRepository
	outbox          *MockOutboxRepository
	lineage         *MockLineageReader
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		offers:          new(MockOfferRepository),
		requests:        new(MockRequestRepository),
		needs:           new(MockNeedRepository),
		harvests:        new(MockHarvestRepository),
		purchasedOlives: new(MockPurchasedOliveRepository),
		oilProducts:     new(MockOilProductRepository),
		mills:           new(MockMillRepository),
		groves:          new(MockGroveRepository),
		machines:        new(MockMachineRepository),
		storageAreas:    new(MockStorageAreaRepository),
		serviceRequests: new(MockServiceRequestRepository),
		serviceOffers:   new(MockServiceOfferRepository),
		operations:      new(MockOperationRepository),
		outbox:          new(MockOutboxRepository),
		lineage:         new(MockLineageReader),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository                   { return m.offers }
func (m *MockUoW) RequestRepository() ports.RequestRepository               { return m.requests }
func (m *MockUoW) NeedRepository() ports.NeedRepository                     { return m.needs }
func (m *MockUoW) HarvestRepository() ports.HarvestRepository               { return m.harvests }
func (m *MockUoW) PurchasedOliveRepository() ports.PurchasedOliveRepository { return m.purchasedOlives }
func (m *MockUoW) OilProductRepository() ports.OilProductRepository         { return m.oilProducts }
func (m *MockUoW) MillRepository() ports.MillRepository                     { return m.mills }
func (m *MockUoW) GroveRepository() ports.GroveRepository                   { return m.groves }
func (m *MockUoW) MachineRepository() ports.MachineRepository               { return m.machines }
func (m *MockUoW) StorageAreaRepository() ports.StorageAreaRepository       { return m.storageAreas }
func (m *MockUoW) ServiceRequestRepository() ports.ServiceRequestRepository { return m.serviceRequests }
func (m *MockUoW) ServiceOfferRepository() ports.ServiceOfferRepository     { return m.serviceOffers }
func (m *MockUoW) OperationRepository() ports.OperationRepository           { return m.operations }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository                 { return m.outbox }
func (m *MockUoW) LineageReader() ports.LineageReader                       { return m.lineage }

// assertRepositories checks every repository expectation set on the mock.
func (m *MockUoW) assertRepositories(t mock.TestingT) {
	m.offers.AssertExpectations(t)
	m.requests.AssertExpectations(t)
	m.needs.AssertExpectations(t)
	m.harvests.AssertExpectations(t)
	m.purchasedOlives.AssertExpectations(t)
	m.oilProducts.AssertExpectations(t)
	m.mills.AssertExpectations(t)
	m.groves.AssertExpectations(t)
	m.machines.AssertExpectations(t)
	m.storageAreas.AssertExpectations(t)
	m.serviceRequests.AssertExpectations(t)
	m.serviceOffers.AssertExpectations(t)
	m.operations.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
	m.lineage.AssertExpectations(t)
	m.AssertExpectations(t)
}

type MockFacilityUoWFactory struct{ mock.Mock }

func (m *MockFacilityUoWFactory) Create() commands.FacilityUoW {
	args := m.Called()
	return args.Get(0).(commands.FacilityUoW)
}

type MockTradeUoWFactory struct{ mock.Mock }

func (m *MockTradeUoWFactory) Create() commands.TradeUoW {
	args := m.Called()
	return args.Get(0).(commands.TradeUoW)
}

type MockServiceUoWFactory struct{ mock.Mock }

func (m *MockServiceUoWFactory) Create() commands.ServiceUoW {
	args := m.Called()
	return args.Get(0).(commands.ServiceUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}
