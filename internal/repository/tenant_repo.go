package repository

import (
	"fmt"
	"sync"

	"kost-service/internal/model"
	"kost-service/pkg/textstore"

	"go.uber.org/zap"
)

// TenantFile is the record file holding tenant records
const TenantFile = "tenants.txt"

// TenantRepository is the owning store for tenant records. Tenants are never
// physically removed; deactivation keeps the record for history.
type TenantRepository struct {
	mu      sync.RWMutex
	store   *textstore.Store
	log     *zap.Logger
	tenants []model.Tenant
}

// NewTenantRepository creates the repository and loads the tenant file
func NewTenantRepository(store *textstore.Store, log *zap.Logger) (*TenantRepository, error) {
	r := &TenantRepository{
		store: store,
		log:   log.With(zap.String("repository", "tenants")),
	}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh discards the in-memory list and reloads it from the record file
func (r *TenantRepository) Refresh() error {
	lines, err := r.store.ReadAllLines(TenantFile)
	if err != nil {
		return fmt.Errorf("load tenants: %w", err)
	}

	tenants, skipped := model.ParseTenants(lines)
	for _, s := range skipped {
		r.log.Warn("skipping malformed tenant record",
			zap.Int("line", s.Number),
			zap.String("reason", s.Reason))
	}

	r.mu.Lock()
	r.tenants = tenants
	r.mu.Unlock()
	return nil
}

func (r *TenantRepository) save() error {
	lines := make([]string, len(r.tenants))
	for i, tenant := range r.tenants {
		lines[i] = tenant.Record()
	}
	return r.store.WriteAllLines(TenantFile, lines)
}

// Create appends the tenant and persists the full list. On a failed save the
// appended tenant is removed again. Room occupancy is handled by Occupancy,
// not here.
func (r *TenantRepository) Create(tenant model.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tenants = append(r.tenants, tenant)
	if err := r.save(); err != nil {
		r.tenants = r.tenants[:len(r.tenants)-1]
		return fmt.Errorf("create tenant %s: %w", tenant.ID, err)
	}
	return nil
}

// GetAll returns a copy of all tenants, including inactive ones
func (r *TenantRepository) GetAll() []model.Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tenants := make([]model.Tenant, len(r.tenants))
	copy(tenants, r.tenants)
	return tenants
}

// GetByID returns the tenant with the given id
func (r *TenantRepository) GetByID(id string) (model.Tenant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tenant := range r.tenants {
		if tenant.ID == id {
			return tenant, true
		}
	}
	return model.Tenant{}, false
}

// Update replaces the tenant with the same id and persists the full list. On
// a failed save the previous record is restored.
func (r *TenantRepository) Update(tenant model.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, t := range r.tenants {
		if t.ID == tenant.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("update tenant %s: %w", tenant.ID, ErrNotFound)
	}

	prev := r.tenants[idx]
	r.tenants[idx] = tenant
	if err := r.save(); err != nil {
		r.tenants[idx] = prev
		return fmt.Errorf("update tenant %s: %w", tenant.ID, err)
	}
	return nil
}

// GenerateNewID returns the next sequential tenant id (T001, T002, ...)
func (r *TenantRepository) GenerateNewID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.tenants))
	for i, tenant := range r.tenants {
		ids[i] = tenant.ID
	}
	return nextID(model.TenantIDPrefix, ids)
}

// Active returns the tenants with Active status
func (r *TenantRepository) Active() []model.Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tenants []model.Tenant
	for _, tenant := range r.tenants {
		if tenant.Status == model.TenantStatusActive {
			tenants = append(tenants, tenant)
		}
	}
	return tenants
}

// CountActive returns the number of tenants with Active status
func (r *TenantRepository) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, tenant := range r.tenants {
		if tenant.Status == model.TenantStatusActive {
			count++
		}
	}
	return count
}

// ActiveByRoom returns the active tenant assigned to the given room, if any
func (r *TenantRepository) ActiveByRoom(roomID string) (model.Tenant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tenant := range r.tenants {
		if tenant.RoomID == roomID && tenant.Status == model.TenantStatusActive {
			return tenant, true
		}
	}
	return model.Tenant{}, false
}
