package facilityrepo_test

import (
	"context"
	"testing"
	"time"

	"oliveflow/internal/adapters/out/postgres/facilityrepo"
	"oliveflow/internal/adapters/out/postgres/pgtest"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.ID, aggregate any) {
	m.Called(id, aggregate)
}

type FacilityRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	tracker  *MockAggregateTracker
	mills    *facilityrepo.GormMillRepository
	groves   *facilityrepo.GormGroveRepository
	machines *facilityrepo.GormMachineRepository
	areas    *facilityrepo.GormStorageAreaRepository
}

func (suite *FacilityRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *FacilityRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("oil_mills", "olive_groves", "machines", "storage_areas"))

	suite.tracker = new(MockAggregateTracker)
	suite.mills = facilityrepo.NewGormMillRepository(suite.database.DB, suite.tracker)
	suite.groves = facilityrepo.NewGormGroveRepository(suite.database.DB, suite.tracker)
	suite.machines = facilityrepo.NewGormMachineRepository(suite.database.DB, suite.tracker)
	suite.areas = facilityrepo.NewGormStorageAreaRepository(suite.database.DB, suite.tracker)
}

func (suite *FacilityRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestMill_GetByManager() {
	ctx := suite.T().Context()
	managerID := kernel.NewUUID()
	mill, err := facility.NewOilMill("Huilerie Zitouna", managerID, true, false)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", kernel.ID(1), mill).Once()

	suite.Require().NoError(suite.mills.Add(ctx, mill))

	stored, err := suite.mills.GetByManager(ctx, managerID)
	suite.Require().NoError(err)
	suite.Equal(mill.ID(), stored.ID())
	suite.Equal("Huilerie Zitouna", stored.Name())
	suite.True(stored.HasLab())
	suite.False(stored.HasPackUnit())
	suite.True(stored.IsManagedBy(managerID))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestMill_OneMillPerManager() {
	ctx := suite.T().Context()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	managerID := kernel.NewUUID()

	first, err := facility.NewOilMill("North", managerID, false, false)
	suite.Require().NoError(err)
	second, err := facility.NewOilMill("South", managerID, false, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.mills.Add(ctx, first))

	err = suite.mills.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestMill_UnknownManager() {
	_, err := suite.mills.GetByManager(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestGrove_AddAndGet() {
	ctx := suite.T().Context()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	farmerID := kernel.NewUUID()
	grove, err := facility.NewOliveGrove("Sfax east", farmerID, "chemlali")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.groves.Add(ctx, grove))

	stored, err := suite.groves.Get(ctx, grove.ID())
	suite.Require().NoError(err)
	suite.True(stored.FarmerID().IsEqual(farmerID))
	suite.Equal("chemlali", stored.Variety())
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestMachine_AddGetDelete() {
	ctx := suite.T().Context()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	purchased := time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC)
	machine, err := facility.NewMachine(3, "DEC-40", "Pieralisi", "Pieralisi SpA", purchased, 4000, facility.ContinuousTwoPhases)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.machines.Add(ctx, machine))

	stored, err := suite.machines.Get(ctx, machine.ID())
	suite.Require().NoError(err)
	suite.Equal(kernel.ID(3), stored.MillID())
	suite.Equal("DEC-40", stored.Reference())
	suite.Equal(facility.ContinuousTwoPhases, stored.Type())
	suite.Equal(4000, stored.Capacity())
	suite.True(purchased.Equal(stored.PurchaseDate()))

	suite.Require().NoError(suite.machines.Delete(ctx, machine.ID()))
	_, err = suite.machines.Get(ctx, machine.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.machines.Delete(ctx, machine.ID()), errs.ErrObjectNotFound)
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestStorageArea_Owners() {
	ctx := suite.T().Context()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	millOwner, err := kernel.NewMill(3)
	suite.Require().NoError(err)
	farmerOwner, err := kernel.NewFarmer(kernel.NewUUID())
	suite.Require().NoError(err)

	cellar, err := facility.NewStorageArea(millOwner, "cellar", "Route de Sfax km 3",
		&facility.Coordinates{Latitude: 34.74, Longitude: 10.76}, "stainless tank", 6)
	suite.Require().NoError(err)
	shed, err := facility.NewStorageArea(farmerOwner, "shed", "Douar El Ain", nil, "jar", 20)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.areas.Add(ctx, cellar))
	suite.Require().NoError(suite.areas.Add(ctx, shed))

	stored, err := suite.areas.Get(ctx, cellar.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsOwnedBy(millOwner))
	suite.Require().NotNil(stored.Location())
	suite.InDelta(34.74, stored.Location().Latitude, 1e-9)

	stored, err = suite.areas.Get(ctx, shed.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsOwnedBy(farmerOwner))
	suite.Nil(stored.Location())
	suite.Equal(20, stored.ContainerCount())
}

func (suite *FacilityRepositoryIntegrationTestSuite) TestStorageArea_SingleOwnerConstraint() {
	millID := int64(3)
	farmerID := kernel.NewUUID().Bytes()
	row := facilityrepo.StorageAreaDTO{
		OwnerMillID:    &millID,
		OwnerFarmerID:  &farmerID,
		LocalType:      "cellar",
		Address:        "nowhere",
		ContainerType:  "tank",
		ContainerCount: 1,
	}

	err := suite.database.DB.WithContext(suite.T().Context()).Create(&row).Error

	suite.Require().Error(err)
	suite.Contains(err.Error(), "storage_areas_single_owner")
}

func TestFacilityRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FacilityRepositoryIntegrationTestSuite))
}
