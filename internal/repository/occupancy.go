package repository

import (
	"fmt"

	"kost-service/internal/model"

	"go.uber.org/zap"
)

// Occupancy keeps room status consistent with the tenant lifecycle: a room is
// Occupied exactly while it has an active tenant. The room and tenant files
// are written independently, so the two updates are not atomic; a failure
// between them is compensated best-effort and logged, never hidden.
type Occupancy struct {
	rooms   *RoomRepository
	tenants *TenantRepository
	log     *zap.Logger
}

// NewOccupancy wires the coordinator to both repositories
func NewOccupancy(rooms *RoomRepository, tenants *TenantRepository, log *zap.Logger) *Occupancy {
	return &Occupancy{
		rooms:   rooms,
		tenants: tenants,
		log:     log.With(zap.String("component", "occupancy")),
	}
}

// RegisterTenant creates the tenant and marks their room Occupied. The room
// must exist and be Available; claiming it is a single conditional flip, so
// of two concurrent registrations for the same room exactly one wins and the
// other gets ErrRoomOccupied. If the tenant save fails after the room was
// flipped, the room status is rolled back.
func (o *Occupancy) RegisterTenant(tenant model.Tenant) error {
	if err := o.rooms.SetStatusIf(tenant.RoomID, model.RoomStatusAvailable, model.RoomStatusOccupied); err != nil {
		return fmt.Errorf("register tenant %s: %w", tenant.ID, err)
	}

	if err := o.tenants.Create(tenant); err != nil {
		// Compensate the room flip; if this also fails the two files are
		// inconsistent and the operator has to reconcile by hand.
		if undoErr := o.rooms.SetStatus(tenant.RoomID, model.RoomStatusAvailable); undoErr != nil {
			o.log.Error("room left occupied after failed tenant create",
				zap.String("room_id", tenant.RoomID),
				zap.String("tenant_id", tenant.ID),
				zap.Error(undoErr))
		}
		return fmt.Errorf("register tenant %s: %w", tenant.ID, err)
	}

	return nil
}

// DeactivateTenant soft-deletes the tenant and frees their room. The tenant
// record stays retrievable for history. If releasing the room fails the
// tenant remains deactivated and the inconsistency is reported to the caller.
func (o *Occupancy) DeactivateTenant(id string) error {
	tenant, ok := o.tenants.GetByID(id)
	if !ok {
		return fmt.Errorf("deactivate tenant %s: %w", id, ErrNotFound)
	}
	if tenant.Status == model.TenantStatusInactive {
		return nil
	}

	tenant.Status = model.TenantStatusInactive
	if err := o.tenants.Update(tenant); err != nil {
		return fmt.Errorf("deactivate tenant %s: %w", id, err)
	}

	if err := o.rooms.SetStatus(tenant.RoomID, model.RoomStatusAvailable); err != nil {
		o.log.Error("tenant deactivated but room not released",
			zap.String("tenant_id", id),
			zap.String("room_id", tenant.RoomID),
			zap.Error(err))
		return fmt.Errorf("deactivate tenant %s: room %s not released: %w", id, tenant.RoomID, err)
	}

	return nil
}
