package repository

import (
	"os"
	"testing"

	"kost-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRoomSaveReloadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)

	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, repo.Create(testRoom("R002", model.RoomStatusOccupied)))

	reloaded := newRoomRepo(t, store)
	assert.Equal(t, repo.GetAll(), reloaded.GetAll())
}

func TestRoomGenerateNewID(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)

	assert.Equal(t, "R001", repo.GenerateNewID())

	require.NoError(t, repo.Create(testRoom("R005", model.RoomStatusAvailable)))
	require.NoError(t, repo.Create(testRoom("R002", model.RoomStatusAvailable)))
	assert.Equal(t, "R006", repo.GenerateNewID())
}

func TestRoomUpdateNotFoundLeavesFileUnchanged(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))

	before, err := os.ReadFile(store.Path(RoomFile))
	require.NoError(t, err)

	err = repo.Update(testRoom("R099", model.RoomStatusAvailable))
	require.ErrorIs(t, err, ErrNotFound)

	after, readErr := os.ReadFile(store.Path(RoomFile))
	require.NoError(t, readErr)
	assert.Equal(t, before, after)
	assert.Len(t, repo.GetAll(), 1)
}

func TestRoomSetStatusIf(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))

	require.NoError(t, repo.SetStatusIf("R001", model.RoomStatusAvailable, model.RoomStatusOccupied))

	// The transition only happens once; a second claim loses.
	err := repo.SetStatusIf("R001", model.RoomStatusAvailable, model.RoomStatusOccupied)
	require.ErrorIs(t, err, ErrRoomOccupied)

	err = repo.SetStatusIf("R099", model.RoomStatusAvailable, model.RoomStatusOccupied)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRoomDeleteOccupiedRejected(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusOccupied)))

	err := repo.Delete("R001")
	require.ErrorIs(t, err, ErrRoomOccupied)

	_, ok := repo.GetByID("R001")
	assert.True(t, ok)
}

func TestRoomCreateRollbackOnSaveFailure(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))

	// A directory at the temp path makes the next save fail.
	require.NoError(t, os.Mkdir(store.Path(RoomFile)+".tmp", 0o755))

	err := repo.Create(testRoom("R002", model.RoomStatusAvailable))
	require.Error(t, err)

	// The appended room was rolled back in memory and never hit the file.
	assert.Len(t, repo.GetAll(), 1)
	reloaded := newRoomRepo(t, store)
	assert.Len(t, reloaded.GetAll(), 1)
}

func TestRoomGetAllReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))

	rooms := repo.GetAll()
	rooms[0].Status = model.RoomStatusOccupied

	room, ok := repo.GetByID("R001")
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusAvailable, room.Status)
}

func TestRoomLoadSkipsMalformedLines(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.WriteAllLines(RoomFile, []string{
		"R001|101|Single|1500000.00|3x4|AC|Available|",
		"garbage line",
	}))

	repo, err := NewRoomRepository(store, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, repo.GetAll(), 1)
}

func TestRoomCountByStatusAndAvailable(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, repo.Create(testRoom("R002", model.RoomStatusOccupied)))
	require.NoError(t, repo.Create(testRoom("R003", model.RoomStatusAvailable)))

	assert.Equal(t, 2, repo.CountByStatus(model.RoomStatusAvailable))
	assert.Equal(t, 1, repo.CountByStatus(model.RoomStatusOccupied))
	assert.Len(t, repo.Available(), 2)
}

func TestRoomDeleteAndRefresh(t *testing.T) {
	store := newTestStore(t)
	repo := newRoomRepo(t, store)
	require.NoError(t, repo.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, repo.Create(testRoom("R002", model.RoomStatusAvailable)))

	require.NoError(t, repo.Delete("R001"))
	_, ok := repo.GetByID("R001")
	assert.False(t, ok)

	// Refresh rereads the file written by the delete.
	require.NoError(t, repo.Refresh())
	assert.Len(t, repo.GetAll(), 1)
}
