package services_test

import (
	"testing"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeline struct {
	mill    *facility.OilMill
	request *service.Request
	offer   *service.Offer
}

func approvedPipeline(t *testing.T, kind service.Kind, details service.Details, subject kernel.ID) pipeline {
	t.Helper()
	mill, err := facility.RestoreOilMill(3, "Huilerie Zitouna", kernel.NewUUID(), true, true)
	require.NoError(t, err)
	request, err := service.NewRequest(kind, kernel.NewUUID(), subject, tonnes(t, 10), euros(t), now, details)
	require.NoError(t, err)
	require.NoError(t, request.AssignIdentity(60))
	offer, err := service.NewOffer(request, mill, euros(t), now, false)
	require.NoError(t, err)
	require.NoError(t, offer.AssignIdentity(50))
	require.NoError(t, offer.Approve(request, now))
	return pipeline{mill: mill, request: request, offer: offer}
}

func TestOperationCompleter_Extraction(t *testing.T) {
	completer := services.NewOperationCompleter()
	p := approvedPipeline(t, service.Extraction, service.ExtractionDetails{Method: "continuous"}, 70)
	produced, err := kernel.NewQuantity(decimal.NewFromInt(1800), kernel.Liters)
	require.NoError(t, err)
	record := service.ExtractionRecord{
		StartDate:        now,
		FinishDate:       now.Add(8 * time.Hour),
		OlivesQuantity:   tonnes(t, 10),
		ProducedQuantity: produced,
		Method:           "continuous",
	}

	op, err := completer.Complete(p.offer, p.request, p.mill, record, now)
	require.NoError(t, err)
	assert.Equal(t, service.OfferExtracted, p.offer.Status())
	offerID, ok := op.Source().ServiceOfferID()
	require.True(t, ok)
	assert.Equal(t, p.offer.ID(), offerID)
	assert.Nil(t, op.SubjectProductID())

	require.NoError(t, op.AssignIdentity(10))
	product, err := completer.Extract(op)
	require.NoError(t, err)
	assert.Equal(t, good.Extraction, product.Cause())
	assert.Equal(t, kernel.FarmerParty, product.OwnerCategory())
	assert.Equal(t, kernel.ID(10), *product.OperationID())

	_, err = completer.Complete(p.offer, p.request, p.mill, record, now)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestOperationCompleter_OnlyTheProvider(t *testing.T) {
	completer := services.NewOperationCompleter()
	p := approvedPipeline(t, service.Storage, service.StorageDetails{}, 9)
	other, err := facility.RestoreOilMill(4, "Other", kernel.NewUUID(), false, false)
	require.NoError(t, err)
	stored, err := kernel.NewQuantity(decimal.NewFromInt(100), kernel.Liters)
	require.NoError(t, err)

	_, err = completer.Complete(p.offer, p.request, other, service.StorageRecord{StorageDate: now, StoredQuantity: stored, AreaID: 5}, now)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, service.OfferApproved, p.offer.Status())
}

func TestOperationCompleter_Apply(t *testing.T) {
	completer := services.NewOperationCompleter()
	liters, err := kernel.NewQuantity(decimal.NewFromInt(100), kernel.Liters)
	require.NoError(t, err)
	product, err := good.NewExtractedProduct(10, kernel.FarmerParty, liters, now)
	require.NoError(t, err)
	require.NoError(t, product.AssignIdentity(9))

	p := approvedPipeline(t, service.Analysis, service.AnalysisDetails{Types: []service.AnalysisType{service.Acidity}}, 9)
	op, err := completer.Complete(p.offer, p.request, p.mill, service.AnalysisRecord{
		Reference:    "AN-2024-17",
		AnalysisDate: now,
		LabName:      "Zitouna lab",
		Quality:      good.ExtraVirgin,
		Acidity:      "0.3",
	}, now)
	require.NoError(t, err)
	require.NoError(t, op.AssignIdentity(11))

	require.NoError(t, completer.Apply(op, product))
	assert.Equal(t, good.ExtraVirgin, product.Quality())
	assert.True(t, product.IsAnalysed())
	assert.Equal(t, service.OfferAnalysed, p.offer.Status())

	_, err = completer.Extract(op)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
