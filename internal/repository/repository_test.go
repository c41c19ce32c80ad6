package repository

import (
	"path/filepath"
	"testing"
	"time"

	"kost-service/internal/model"
	"kost-service/pkg/textstore"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *textstore.Store {
	t.Helper()
	return textstore.New(filepath.Join(t.TempDir(), "data"), zap.NewNop())
}

func newRoomRepo(t *testing.T, store *textstore.Store) *RoomRepository {
	t.Helper()
	repo, err := NewRoomRepository(store, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func newTenantRepo(t *testing.T, store *textstore.Store) *TenantRepository {
	t.Helper()
	repo, err := NewTenantRepository(store, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func newPaymentRepo(t *testing.T, store *textstore.Store) *PaymentRepository {
	t.Helper()
	repo, err := NewPaymentRepository(store, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func testRoom(id, status string) model.Room {
	return model.Room{
		ID:         id,
		RoomNumber: "10" + id[len(id)-1:],
		Type:       model.RoomTypeSingle,
		Price:      1500000,
		Size:       "3x4",
		Amenities:  "AC, WiFi",
		Status:     status,
	}
}

func testTenant(id, roomID string) model.Tenant {
	return model.Tenant{
		ID:         id,
		Name:       "Tenant " + id,
		Phone:      "0812000",
		Email:      id + "@example.com",
		RoomID:     roomID,
		MoveInDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:     model.TenantStatusActive,
	}
}

func testPayment(id, tenantID, period, status string) model.Payment {
	return model.Payment{
		ID:          id,
		TenantID:    tenantID,
		Period:      period,
		PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount:      1500000,
		Method:      model.PaymentMethodCash,
		Status:      status,
	}
}

func TestNextID(t *testing.T) {
	require.Equal(t, "R001", nextID("R", nil))
	require.Equal(t, "R006", nextID("R", []string{"R005", "R002"}))
	require.Equal(t, "T010", nextID("T", []string{"T009", "T001"}))
	// Ids outside the convention are ignored
	require.Equal(t, "P003", nextID("P", []string{"P002", "X999", "Pabc"}))
}
