package commands_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approved(t *testing.T, offer *service.Offer, request *service.Request) {
	t.Helper()
	require.NoError(t, offer.Approve(request, harvestDay))
}

func TestCompleteOperationCommandHandler_Handle_Extraction(t *testing.T) {
	ctx := t.Context()
	farmer := actor(t, kernel.FarmerRole)
	manager := actor(t, kernel.MillManagerRole)
	provider := mill(t, 3, manager)
	request := serviceRequest(t, 60, service.Extraction, farmer, 7, service.ExtractionDetails{Method: "continuous"})
	offer := serviceOffer(t, 50, request, provider)
	approved(t, offer, request)

	record := service.ExtractionRecord{
		StartDate:        harvestDay,
		FinishDate:       harvestDay.Add(8 * time.Hour),
		OlivesQuantity:   tonnes(t, 10),
		ProducedQuantity: liters(t, 1800),
		Method:           "continuous",
	}
	cmd, err := commands.NewCompleteOperationCommand(manager, offer.ID(), record, nil)
	require.NoError(t, err)

	var product *good.OilProduct
	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.mills.On("GetByManager", ctx, manager.ID()).Return(provider, nil).Once(),
		uow.serviceOffers.On("Get", ctx, offer.ID()).Return(offer, nil).Once(),
		uow.serviceRequests.On("Get", ctx, request.ID()).Return(request, nil).Once(),
		uow.operations.On("Add", ctx, mock.AnythingOfType("*service.Operation")).Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*service.Operation).AssignIdentity(80))
		}).Return(nil).Once(),
		uow.oilProducts.On("Add", ctx, mock.AnythingOfType("*good.OilProduct")).Run(func(args mock.Arguments) {
			product = args.Get(1).(*good.OilProduct)
			require.NoError(t, product.AssignIdentity(90))
		}).Return(nil).Once(),
		uow.operations.On("Update", ctx, mock.AnythingOfType("*service.Operation")).Return(nil).Once(),
		uow.serviceOffers.On("Update", ctx, offer).Return(nil).Once(),
		uow.outbox.On("Add", ctx, anyEvent()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()
	reports := new(MockReportStore)

	created, err := commands.NewCompleteOperationCommandHandler(factory, reports).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(80), created.ID)
	assert.Equal(t, service.OfferExtracted, offer.Status())
	require.NotNil(t, product)
	assert.Equal(t, good.Extraction, product.Cause())
	assert.Equal(t, kernel.ID(80), *product.OperationID())
	assert.True(t, product.Produced().Equal(liters(t, 1800)))
	reports.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.assertRepositories(t)
}

func TestCompleteOperationCommandHandler_Handle_AnalysisWithReport(t *testing.T) {
	ctx := t.Context()
	farmer := actor(t, kernel.FarmerRole)
	manager := actor(t, kernel.MillManagerRole)
	provider := mill(t, 3, manager)
	product := oilProduct(t, 9, 80, 500)
	request := serviceRequest(t, 60, service.Analysis, farmer, product.ID(),
		service.AnalysisDetails{Types: []service.AnalysisType{service.Acidity, service.PeroxideValue}})
	offer := serviceOffer(t, 50, request, provider)
	approved(t, offer, request)

	record := service.AnalysisRecord{
		Reference:    "AN-2024-17",
		AnalysisDate: harvestDay,
		LabName:      "Zitouna lab",
		Quality:      good.ExtraVirgin,
		Acidity:      "0.3",
	}
	report := &commands.Report{Name: "../results.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.7")}
	cmd, err := commands.NewCompleteOperationCommand(manager, offer.ID(), record, report)
	require.NoError(t, err)

	wantKey := "analysis/" + offer.Code().String() + "/results.pdf"
	uow := newMockUoW()
	reports := new(MockReportStore)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.mills.On("GetByManager", ctx, manager.ID()).Return(provider, nil).Once(),
		uow.serviceOffers.On("Get", ctx, offer.ID()).Return(offer, nil).Once(),
		uow.serviceRequests.On("Get", ctx, request.ID()).Return(request, nil).Once(),
		uow.operations.On("Add", ctx, mock.MatchedBy(func(op *service.Operation) bool {
			r, ok := op.Record().(service.AnalysisRecord)
			return ok && r.ReportKey == wantKey
		})).Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*service.Operation).AssignIdentity(81))
		}).Return(nil).Once(),
		uow.oilProducts.On("Get", ctx, product.ID()).Return(product, nil).Once(),
		uow.oilProducts.On("Update", ctx, product).Return(nil).Once(),
		uow.serviceOffers.On("Update", ctx, offer).Return(nil).Once(),
		uow.outbox.On("Add", ctx, anyEvent()).Return(nil).Once(),
		reports.On("Put", ctx, wantKey, mock.MatchedBy(func(body io.Reader) bool {
			b, err := io.ReadAll(body)
			return err == nil && bytes.Equal(b, report.Body)
		}), "application/pdf").Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewCompleteOperationCommandHandler(factory, reports).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, service.OfferAnalysed, offer.Status())
	assert.Equal(t, good.ExtraVirgin, product.Quality())
	reports.AssertExpectations(t)
	uow.assertRepositories(t)
}

func TestCompleteOperationCommandHandler_Handle_ReportUploadFails(t *testing.T) {
	ctx := t.Context()
	manager := actor(t, kernel.MillManagerRole)
	provider := mill(t, 3, manager)
	product := oilProduct(t, 9, 80, 500)
	request := serviceRequest(t, 60, service.Analysis, actor(t, kernel.FarmerRole), product.ID(),
		service.AnalysisDetails{Types: []service.AnalysisType{service.Acidity}})
	offer := serviceOffer(t, 50, request, provider)
	approved(t, offer, request)

	record := service.AnalysisRecord{Reference: "AN-1", AnalysisDate: harvestDay, LabName: "lab", Quality: good.Virgin}
	cmd, err := commands.NewCompleteOperationCommand(manager, offer.ID(), record,
		&commands.Report{Name: "r.pdf", ContentType: "application/pdf", Body: []byte("x")})
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.mills.On("GetByManager", ctx, manager.ID()).Return(provider, nil).Once()
	uow.serviceOffers.On("Get", ctx, offer.ID()).Return(offer, nil).Once()
	uow.serviceRequests.On("Get", ctx, request.ID()).Return(request, nil).Once()
	uow.operations.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*service.Operation).AssignIdentity(81))
	}).Return(nil).Once()
	uow.oilProducts.On("Get", ctx, product.ID()).Return(product, nil).Once()
	uow.oilProducts.On("Update", ctx, product).Return(nil).Once()
	uow.serviceOffers.On("Update", ctx, offer).Return(nil).Once()
	uow.outbox.On("Add", ctx, anyEvent()).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	reports := new(MockReportStore)
	reports.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unreachable")).Once()

	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewCompleteOperationCommandHandler(factory, reports).Handle(ctx, cmd)

	require.EqualError(t, err, "bucket unreachable")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.assertRepositories(t)
}

func TestCompleteOperationCommandHandler_Handle_AnalysisWithoutReport(t *testing.T) {
	ctx := t.Context()
	manager := actor(t, kernel.MillManagerRole)
	provider := mill(t, 3, manager)
	product := oilProduct(t, 9, 80, 500)
	request := serviceRequest(t, 60, service.Analysis, actor(t, kernel.FarmerRole), product.ID(),
		service.AnalysisDetails{Types: []service.AnalysisType{service.Acidity}})
	offer := serviceOffer(t, 50, request, provider)
	approved(t, offer, request)

	record := service.AnalysisRecord{Reference: "AN-2", AnalysisDate: harvestDay, LabName: "lab", Quality: good.Virgin}
	cmd, err := commands.NewCompleteOperationCommand(manager, offer.ID(), record, nil)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.mills.On("GetByManager", ctx, manager.ID()).Return(provider, nil).Once(),
		uow.serviceOffers.On("Get", ctx, offer.ID()).Return(offer, nil).Once(),
		uow.serviceRequests.On("Get", ctx, request.ID()).Return(request, nil).Once(),
		uow.operations.On("Add", ctx, mock.MatchedBy(func(op *service.Operation) bool {
			r, ok := op.Record().(service.AnalysisRecord)
			return ok && r.ReportKey == ""
		})).Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*service.Operation).AssignIdentity(82))
		}).Return(nil).Once(),
		uow.oilProducts.On("Get", ctx, product.ID()).Return(product, nil).Once(),
		uow.oilProducts.On("Update", ctx, product).Return(nil).Once(),
		uow.serviceOffers.On("Update", ctx, offer).Return(nil).Once(),
		uow.outbox.On("Add", ctx, anyEvent()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()
	reports := new(MockReportStore)

	var created commands.Created
	require.NotPanics(t, func() {
		created, err = commands.NewCompleteOperationCommandHandler(factory, reports).Handle(ctx, cmd)
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(82), created.ID)
	assert.Equal(t, service.OfferAnalysed, offer.Status())
	reports.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.assertRepositories(t)
}

func TestCompleteOperationCommandHandler_Handle_StorageArea(t *testing.T) {
	farmer := actor(t, kernel.FarmerRole)
	manager := actor(t, kernel.MillManagerRole)
	provider := mill(t, 3, manager)

	tests := []struct {
		name    string
		owner   func(t *testing.T) kernel.Party
		wantErr error
	}{
		{
			name: "an area of the storing mill",
			owner: func(t *testing.T) kernel.Party {
				p, err := provider.Party()
				require.NoError(t, err)
				return p
			},
		},
		{
			name: "another mill's area",
			owner: func(t *testing.T) kernel.Party {
				p, err := kernel.NewMill(4)
				require.NoError(t, err)
				return p
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "the farmer's own area",
			owner: func(t *testing.T) kernel.Party {
				p, err := kernel.NewFarmer(farmer.ID())
				require.NoError(t, err)
				return p
			},
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			product := oilProduct(t, 9, 80, 500)
			request := serviceRequest(t, 60, service.Storage, farmer, product.ID(), service.StorageDetails{Condition: "dark, 15C"})
			offer := serviceOffer(t, 50, request, provider)
			approved(t, offer, request)
			area := storageArea(t, 4, tt.owner(t))

			record := service.StorageRecord{StorageDate: harvestDay, StoredQuantity: liters(t, 100), AreaID: area.ID()}
			cmd, err := commands.NewCompleteOperationCommand(manager, offer.ID(), record, nil)
			require.NoError(t, err)

			uow := newMockUoW()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.mills.On("GetByManager", ctx, manager.ID()).Return(provider, nil).Once()
			uow.serviceOffers.On("Get", ctx, offer.ID()).Return(offer, nil).Once()
			uow.serviceRequests.On("Get", ctx, request.ID()).Return(request, nil).Once()
			uow.storageAreas.On("Get", ctx, area.ID()).Return(area, nil).Once()
			if tt.wantErr == nil {
				uow.operations.On("Add", ctx, mock.AnythingOfType("*service.Operation")).Run(func(args mock.Arguments) {
					require.NoError(t, args.Get(1).(*service.Operation).AssignIdentity(83))
				}).Return(nil).Once()
				uow.oilProducts.On("Get", ctx, product.ID()).Return(product, nil).Once()
				uow.oilProducts.On("Update", ctx, product).Return(nil).Once()
				uow.serviceOffers.On("Update", ctx, offer).Return(nil).Once()
				uow.outbox.On("Add", ctx, anyEvent()).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockServiceUoWFactory)
			factory.On("Create").Return(uow).Once()

			_, err = commands.NewCompleteOperationCommandHandler(factory, new(MockReportStore)).Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				uow.operations.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
				uow.AssertNotCalled(t, "Commit", mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, product.IsStored())
			uow.assertRepositories(t)
		})
	}
}

func TestCompleteOperationCommandHandler_Handle_RequiresMillManager(t *testing.T) {
	record := service.StorageRecord{StorageDate: harvestDay, StoredQuantity: liters(t, 100), AreaID: 4}
	cmd, err := commands.NewCompleteOperationCommand(actor(t, kernel.FarmerRole), 50, record, nil)
	require.NoError(t, err)
	factory := new(MockServiceUoWFactory)

	_, err = commands.NewCompleteOperationCommandHandler(factory, new(MockReportStore)).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCompleteOperationCommand(t *testing.T) {
	manager := actor(t, kernel.MillManagerRole)
	storage := service.StorageRecord{StorageDate: harvestDay, StoredQuantity: liters(t, 100), AreaID: 4}

	t.Run("report on a storage", func(t *testing.T) {
		_, err := commands.NewCompleteOperationCommand(manager, 50, storage,
			&commands.Report{Name: "r.pdf", Body: []byte("x")})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty report", func(t *testing.T) {
		analysis := service.AnalysisRecord{Reference: "AN-1", AnalysisDate: harvestDay, LabName: "lab", Quality: good.Virgin}

		_, err := commands.NewCompleteOperationCommand(manager, 50, analysis, &commands.Report{Name: "r.pdf"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("report key set by the caller", func(t *testing.T) {
		analysis := service.AnalysisRecord{
			Reference:    "AN-1",
			AnalysisDate: harvestDay,
			LabName:      "lab",
			Quality:      good.Virgin,
			ReportKey:    "analysis/elsewhere/r.pdf",
		}

		_, err := commands.NewCompleteOperationCommand(manager, 50, analysis, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := commands.NewCompleteOperationCommand(manager, 50, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
