package repository

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"kost-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOccupancy(t *testing.T) (*Occupancy, *RoomRepository, *TenantRepository) {
	t.Helper()
	store := newTestStore(t)
	rooms := newRoomRepo(t, store)
	tenants := newTenantRepo(t, store)
	return NewOccupancy(rooms, tenants, zap.NewNop()), rooms, tenants
}

func TestRegisterTenantOccupiesRoom(t *testing.T) {
	occupancy, rooms, tenants := newOccupancy(t)
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, rooms.Create(testRoom("R002", model.RoomStatusAvailable)))

	require.NoError(t, occupancy.RegisterTenant(testTenant("T001", "R001")))

	room, ok := rooms.GetByID("R001")
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusOccupied, room.Status)

	// The other room is untouched.
	other, ok := rooms.GetByID("R002")
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusAvailable, other.Status)

	tenant, ok := tenants.GetByID("T001")
	require.True(t, ok)
	assert.Equal(t, model.TenantStatusActive, tenant.Status)
}

func TestRegisterTenantRoomNotFound(t *testing.T) {
	occupancy, _, tenants := newOccupancy(t)

	err := occupancy.RegisterTenant(testTenant("T001", "R099"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, tenants.GetAll())
}

func TestRegisterTenantRoomOccupied(t *testing.T) {
	occupancy, rooms, tenants := newOccupancy(t)
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, occupancy.RegisterTenant(testTenant("T001", "R001")))

	err := occupancy.RegisterTenant(testTenant("T002", "R001"))
	require.ErrorIs(t, err, ErrRoomOccupied)
	assert.Len(t, tenants.GetAll(), 1)
}

func TestConcurrentRegistrationsClaimRoomOnce(t *testing.T) {
	occupancy, rooms, tenants := newOccupancy(t)
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = occupancy.RegisterTenant(testTenant(fmt.Sprintf("T%03d", i+1), "R001"))
		}(i)
	}
	wg.Wait()

	// Exactly one registration wins the room.
	rejected := 0
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrRoomOccupied)
			rejected++
		}
	}
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, tenants.Active(), 1)

	room, ok := rooms.GetByID("R001")
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusOccupied, room.Status)
}

func TestRegisterTenantRollsBackRoomOnSaveFailure(t *testing.T) {
	store := newTestStore(t)
	rooms := newRoomRepo(t, store)
	tenants := newTenantRepo(t, store)
	occupancy := NewOccupancy(rooms, tenants, zap.NewNop())
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))

	// A directory at the temp path makes the tenant save fail after the
	// room was already flipped Occupied.
	require.NoError(t, os.Mkdir(store.Path(TenantFile)+".tmp", 0o755))

	err := occupancy.RegisterTenant(testTenant("T001", "R001"))
	require.Error(t, err)

	room, ok := rooms.GetByID("R001")
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusAvailable, room.Status)
	assert.Empty(t, tenants.GetAll())
}

func TestDeactivateTenantFreesRoom(t *testing.T) {
	occupancy, rooms, tenants := newOccupancy(t)
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, occupancy.RegisterTenant(testTenant("T001", "R001")))

	require.NoError(t, occupancy.DeactivateTenant("T001"))

	// Soft delete: the record stays retrievable.
	tenant, ok := tenants.GetByID("T001")
	require.True(t, ok)
	assert.Equal(t, model.TenantStatusInactive, tenant.Status)

	room, ok := rooms.GetByID("R001")
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusAvailable, room.Status)
}

func TestDeactivateTenantIdempotent(t *testing.T) {
	occupancy, rooms, _ := newOccupancy(t)
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, occupancy.RegisterTenant(testTenant("T001", "R001")))

	require.NoError(t, occupancy.DeactivateTenant("T001"))
	require.NoError(t, occupancy.DeactivateTenant("T001"))
}

func TestDeactivateTenantNotFound(t *testing.T) {
	occupancy, _, _ := newOccupancy(t)
	err := occupancy.DeactivateTenant("T099")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRoomFreedAfterDeactivationCanBeReassigned(t *testing.T) {
	occupancy, rooms, tenants := newOccupancy(t)
	require.NoError(t, rooms.Create(testRoom("R001", model.RoomStatusAvailable)))
	require.NoError(t, occupancy.RegisterTenant(testTenant("T001", "R001")))
	require.NoError(t, occupancy.DeactivateTenant("T001"))

	require.NoError(t, occupancy.RegisterTenant(testTenant("T002", "R001")))

	active, ok := tenants.ActiveByRoom("R001")
	require.True(t, ok)
	assert.Equal(t, "T002", active.ID)
}
