package service

import (
	"context"
	"testing"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/mock"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCatalogService_CreateRoom(t *testing.T) {
	repo := mock.NewMockCatalogRepository(gomock.NewController(t))
	svc := NewCatalogService(repo, validators.NewStructValidator(), logger.Nop())
	ctx := context.Background()

	repo.EXPECT().CreateRoom(ctx, models.Room{RoomName: "Room A"}).Return(models.Room{RoomID: 1, RoomName: "Room A"}, nil)
	repo.EXPECT().CreateRoom(ctx, models.Room{RoomName: "Room B"}).Return(models.Room{}, store.ErrRoomAlreadyExists)

	room, err := svc.CreateRoom(ctx, models.Room{RoomName: "Room A"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), room.RoomID)

	_, err = svc.CreateRoom(ctx, models.Room{RoomName: "Room B"})
	assert.ErrorIs(t, err, ErrRoomExists)

	_, err = svc.CreateRoom(ctx, models.Room{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_Lists(t *testing.T) {
	repo := mock.NewMockCatalogRepository(gomock.NewController(t))
	svc := NewCatalogService(repo, validators.NewStructValidator(), logger.Nop())
	ctx := context.Background()

	repo.EXPECT().ListPrograms(ctx).Return([]models.Program{{ProgramID: 1, ProgramName: "General"}}, nil)
	repo.EXPECT().ListCompetencies(ctx).Return(nil, errStorage)
	repo.EXPECT().ListRooms(ctx).Return([]models.Room{}, nil)

	programs, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 1)

	_, err = svc.ListCompetencies(ctx)
	assert.ErrorIs(t, err, ErrDependency)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}
