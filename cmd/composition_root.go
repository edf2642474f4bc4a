package cmd

import (
	"log/slog"

	"oliveflow/internal/adapters/in/http"
	"oliveflow/internal/adapters/out/postgres"
	"oliveflow/internal/adapters/out/postgres/lineagerepo"
	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/ports"
	"oliveflow/internal/jobs"
	"oliveflow/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	reports    ports.ReportStore
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	reports ports.ReportStore,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, postgres.NewCommitMetrics(m)),
		notifier:   notifier,
		reports:    reports,
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) facilityUoWFactory() commands.FacilityUoWFactory {
	return FuncFacilityUoWFactory(func() commands.FacilityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tradeUoWFactory() commands.TradeUoWFactory {
	return FuncTradeUoWFactory(func() commands.TradeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) serviceUoWFactory() commands.ServiceUoWFactory {
	return FuncServiceUoWFactory(func() commands.ServiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterOilMillCommandHandler() commands.RegisterOilMillCommandHandler {
	return commands.NewRegisterOilMillCommandHandler(c.facilityUoWFactory())
}

func (c *CompositionRoot) CreateRegisterOliveGroveCommandHandler() commands.RegisterOliveGroveCommandHandler {
	return commands.NewRegisterOliveGroveCommandHandler(c.facilityUoWFactory())
}

func (c *CompositionRoot) CreateRecordHarvestCommandHandler() commands.RecordHarvestCommandHandler {
	return commands.NewRecordHarvestCommandHandler(c.facilityUoWFactory())
}

func (c *CompositionRoot) CreateRegisterMachineCommandHandler() commands.RegisterMachineCommandHandler {
	return commands.NewRegisterMachineCommandHandler(c.facilityUoWFactory())
}

func (c *CompositionRoot) CreateRetireMachineCommandHandler() commands.RetireMachineCommandHandler {
	return commands.NewRetireMachineCommandHandler(c.facilityUoWFactory())
}

func (c *CompositionRoot) CreateRegisterStorageAreaCommandHandler() commands.RegisterStorageAreaCommandHandler {
	return commands.NewRegisterStorageAreaCommandHandler(c.facilityUoWFactory())
}

func (c *CompositionRoot) CreateCreateNeedCommandHandler() commands.CreateNeedCommandHandler {
	return commands.NewCreateNeedCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateCreateOfferCommandHandler() commands.CreateOfferCommandHandler {
	return commands.NewCreateOfferCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateCancelOfferCommandHandler() commands.CancelOfferCommandHandler {
	return commands.NewCancelOfferCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateReviewRequestCommandHandler() commands.ReviewRequestCommandHandler {
	return commands.NewReviewRequestCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateConfirmPurchaseCommandHandler() commands.ConfirmPurchaseCommandHandler {
	return commands.NewConfirmPurchaseCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateLeaveFeedbackCommandHandler() commands.LeaveFeedbackCommandHandler {
	return commands.NewLeaveFeedbackCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateCreateServiceRequestCommandHandler() commands.CreateServiceRequestCommandHandler {
	return commands.NewCreateServiceRequestCommandHandler(c.serviceUoWFactory())
}

func (c *CompositionRoot) CreateCancelServiceRequestCommandHandler() commands.CancelServiceRequestCommandHandler {
	return commands.NewCancelServiceRequestCommandHandler(c.serviceUoWFactory())
}

func (c *CompositionRoot) CreateCreateServiceOfferCommandHandler() commands.CreateServiceOfferCommandHandler {
	return commands.NewCreateServiceOfferCommandHandler(c.serviceUoWFactory())
}

func (c *CompositionRoot) CreateReviewServiceOfferCommandHandler() commands.ReviewServiceOfferCommandHandler {
	return commands.NewReviewServiceOfferCommandHandler(c.serviceUoWFactory())
}

func (c *CompositionRoot) CreateCompleteOperationCommandHandler() commands.CompleteOperationCommandHandler {
	return commands.NewCompleteOperationCommandHandler(c.serviceUoWFactory(), c.reports)
}

func (c *CompositionRoot) CreateCreateOperationCommandHandler() commands.CreateOperationCommandHandler {
	return commands.NewCreateOperationCommandHandler(c.serviceUoWFactory())
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	return commands.NewDispatchNotificationsCommandHandler(c.outboxUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateResolveOwnerQueryHandler() queries.ResolveOwnerQueryHandler {
	return queries.NewResolveOwnerQueryHandler(lineagerepo.NewGormLineageReader(c.gormDB))
}

func (c *CompositionRoot) CreateProductLineageQueryHandler() queries.ProductLineageQueryHandler {
	return queries.NewProductLineageQueryHandler(c.gormDB, lineagerepo.NewGormLineageReader(c.gormDB))
}

func (c *CompositionRoot) CreateOfferBalanceQueryHandler() queries.OfferBalanceQueryHandler {
	return queries.NewOfferBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateUnbalancedOffersQueryHandler() queries.UnbalancedOffersQueryHandler {
	return queries.NewUnbalancedOffersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchOffersQueryHandler() queries.SearchOffersQueryHandler {
	return queries.NewSearchOffersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMachinesQueryHandler() queries.ListMachinesQueryHandler {
	return queries.NewListMachinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMachineQueryHandler() queries.GetMachineQueryHandler {
	return queries.NewGetMachineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStorageAreasQueryHandler() queries.ListStorageAreasQueryHandler {
	return queries.NewListStorageAreasQueryHandler(c.gormDB)
}

// CreateHTTPHandlers gathers every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		RegisterOilMill:    c.CreateRegisterOilMillCommandHandler(),
		RegisterOliveGrove: c.CreateRegisterOliveGroveCommandHandler(),
		RecordHarvest:      c.CreateRecordHarvestCommandHandler(),

		RegisterMachine:     c.CreateRegisterMachineCommandHandler(),
		RetireMachine:       c.CreateRetireMachineCommandHandler(),
		RegisterStorageArea: c.CreateRegisterStorageAreaCommandHandler(),
		ListMachines:        c.CreateListMachinesQueryHandler(),
		GetMachine:          c.CreateGetMachineQueryHandler(),
		ListStorageAreas:    c.CreateListStorageAreasQueryHandler(),

		CreateNeed:      c.CreateCreateNeedCommandHandler(),
		CreateOffer:     c.CreateCreateOfferCommandHandler(),
		CancelOffer:     c.CreateCancelOfferCommandHandler(),
		CreateRequest:   c.CreateCreateRequestCommandHandler(),
		ReviewRequest:   c.CreateReviewRequestCommandHandler(),
		ConfirmPurchase: c.CreateConfirmPurchaseCommandHandler(),
		LeaveFeedback:   c.CreateLeaveFeedbackCommandHandler(),

		CreateServiceRequest: c.CreateCreateServiceRequestCommandHandler(),
		CancelServiceRequest: c.CreateCancelServiceRequestCommandHandler(),
		CreateServiceOffer:   c.CreateCreateServiceOfferCommandHandler(),
		ReviewServiceOffer:   c.CreateReviewServiceOfferCommandHandler(),
		CompleteOperation:    c.CreateCompleteOperationCommandHandler(),
		CreateOperation:      c.CreateCreateOperationCommandHandler(),

		ResolveOwner:     c.CreateResolveOwnerQueryHandler(),
		ProductLineage:   c.CreateProductLineageQueryHandler(),
		OfferBalance:     c.CreateOfferBalanceQueryHandler(),
		UnbalancedOffers: c.CreateUnbalancedOffersQueryHandler(),
		SearchOffers:     c.CreateSearchOffersQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewNotificationDispatchJob(
			c.CreateDispatchNotificationsCommandHandler(), c.metrics, c.config.OutboxSchedule, c.logger,
		),
		jobs.NewConservationAuditJob(
			c.CreateUnbalancedOffersQueryHandler(), c.metrics, c.config.AuditSchedule, c.logger,
		),
	)
}

type FuncFacilityUoWFactory func() commands.FacilityUoW

func (f FuncFacilityUoWFactory) Create() commands.FacilityUoW {
	return f()
}

type FuncTradeUoWFactory func() commands.TradeUoW

func (f FuncTradeUoWFactory) Create() commands.TradeUoW {
	return f()
}

type FuncServiceUoWFactory func() commands.ServiceUoW

func (f FuncServiceUoWFactory) Create() commands.ServiceUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
