package commands_test

import (
	"testing"

	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterStorageAreaCommandHandler_Handle_Farmer(t *testing.T) {
	ctx := t.Context()
	farmer := actor(t, kernel.FarmerRole)
	owner, err := kernel.NewFarmer(farmer.ID())
	require.NoError(t, err)

	cmd, err := commands.NewRegisterStorageAreaCommand(farmer, "shed", "Douar El Ain",
		&facility.Coordinates{Latitude: 35.5, Longitude: 10.1}, "jar", 20)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.storageAreas.On("Add", ctx, mock.MatchedBy(func(a *facility.StorageArea) bool {
			return a.IsOwnedBy(owner) && a.ContainerCount() == 20
		})).Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*facility.StorageArea).AssignID(6))
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockFacilityUoWFactory)
	factory.On("Create").Return(uow).Once()

	created, err := commands.NewRegisterStorageAreaCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(6), created.ID)
	uow.mills.AssertNotCalled(t, "GetByManager", mock.Anything, mock.Anything)
	uow.assertRepositories(t)
}

func TestRegisterStorageAreaCommandHandler_Handle_MillManager(t *testing.T) {
	ctx := t.Context()
	manager := actor(t, kernel.MillManagerRole)
	provider := mill(t, 3, manager)
	owner, err := provider.Party()
	require.NoError(t, err)

	cmd, err := commands.NewRegisterStorageAreaCommand(manager, "cellar", "Route de Sfax km 3", nil, "stainless tank", 6)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.mills.On("GetByManager", ctx, manager.ID()).Return(provider, nil).Once(),
		uow.storageAreas.On("Add", ctx, mock.MatchedBy(func(a *facility.StorageArea) bool {
			return a.IsOwnedBy(owner) && a.Location() == nil
		})).Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*facility.StorageArea).AssignID(7))
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockFacilityUoWFactory)
	factory.On("Create").Return(uow).Once()

	created, err := commands.NewRegisterStorageAreaCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(7), created.ID)
	uow.assertRepositories(t)
}

func TestRegisterStorageAreaCommandHandler_Handle_ConsumersCannotOwnAreas(t *testing.T) {
	cmd, err := commands.NewRegisterStorageAreaCommand(actor(t, kernel.ConsumerRole), "pantry", "Tunis", nil, "bottle", 12)
	require.NoError(t, err)
	factory := new(MockFacilityUoWFactory)

	_, err = commands.NewRegisterStorageAreaCommandHandler(factory).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestNewRegisterStorageAreaCommand_Location(t *testing.T) {
	_, err := commands.NewRegisterStorageAreaCommand(actor(t, kernel.FarmerRole), "shed", "Douar El Ain",
		&facility.Coordinates{Latitude: 91, Longitude: 10}, "jar", 20)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
