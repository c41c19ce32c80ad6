package handler

import (
	"errors"
	"net/http"
	"time"

	"kost-service/internal/model"
	"kost-service/internal/repository"
	"kost-service/pkg/logger"
	"kost-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantRequest defines the structure for tenant creation/update requests.
// The move-in date uses the same day/month/year format as the record files.
type TenantRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	RoomID     string `json:"room_id"`
	MoveInDate string `json:"move_in_date"`
}

// TenantHandler serves tenant lifecycle requests. Creation and deactivation
// go through the occupancy coordinator so room status stays consistent.
type TenantHandler struct {
	tenants   *repository.TenantRepository
	occupancy *repository.Occupancy
}

// NewTenantHandler creates the handler
func NewTenantHandler(tenants *repository.TenantRepository, occupancy *repository.Occupancy) *TenantHandler {
	return &TenantHandler{tenants: tenants, occupancy: occupancy}
}

// Create registers a new tenant and marks their room occupied
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("tenant", "create")

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.RoomID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}

	moveIn := time.Now()
	if req.MoveInDate != "" {
		parsed, err := time.Parse(model.DateLayout, req.MoveInDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "move_in_date must be dd/mm/yyyy"})
		}
		moveIn = parsed
	}

	tenant := model.Tenant{
		ID:         h.tenants.GenerateNewID(),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		RoomID:     req.RoomID,
		MoveInDate: moveIn,
		Status:     model.TenantStatusActive,
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.occupancy.RegisterTenant(tenant); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
		}
		if errors.Is(err, repository.ErrRoomOccupied) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Room is not available"})
		}
		log.Error("Failed to register tenant",
			zap.String("tenant_id", tenant.ID),
			zap.String("room_id", tenant.RoomID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to register tenant"})
	}

	log.Info("Tenant registered",
		zap.String("tenant_id", tenant.ID),
		zap.String("room_id", tenant.RoomID))
	return c.JSON(http.StatusCreated, tenant)
}

// List returns all tenants; ?status=Active filters by status
func (h *TenantHandler) List(c echo.Context) error {
	prometheus.RecordOperation("tenant", "list")

	tenants := h.tenants.GetAll()

	status := c.QueryParam("status")
	if status != "" {
		filtered := make([]model.Tenant, 0, len(tenants))
		for _, tenant := range tenants {
			if tenant.Status == status {
				filtered = append(filtered, tenant)
			}
		}
		tenants = filtered
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tenants": tenants,
		"count":   len(tenants),
	})
}

// Get returns a tenant by id; inactive tenants stay retrievable
func (h *TenantHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("tenant", "get")

	id := c.Param("id")
	tenant, ok := h.tenants.GetByID(id)
	if !ok {
		log.Warn("Tenant not found", zap.String("tenant_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tenant not found"})
	}
	return c.JSON(http.StatusOK, tenant)
}

// Update replaces a tenant's contact fields; id, room and status are managed
// by the tenant lifecycle, not by field updates
func (h *TenantHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("tenant", "update")

	id := c.Param("id")

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("tenant_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	tenant, ok := h.tenants.GetByID(id)
	if !ok {
		log.Warn("Tenant not found for update", zap.String("tenant_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tenant not found"})
	}

	tenant.Name = req.Name
	tenant.Phone = req.Phone
	tenant.Email = req.Email
	if req.MoveInDate != "" {
		parsed, err := time.Parse(model.DateLayout, req.MoveInDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "move_in_date must be dd/mm/yyyy"})
		}
		tenant.MoveInDate = parsed
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.tenants.Update(tenant); err != nil {
		log.Error("Failed to update tenant", zap.String("tenant_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update tenant"})
	}

	log.Info("Tenant updated", zap.String("tenant_id", id))
	return c.JSON(http.StatusOK, tenant)
}

// Delete soft-deletes a tenant: status becomes Inactive and the linked room
// is released. The record is retained for history.
func (h *TenantHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("tenant", "deactivate")

	id := c.Param("id")

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.occupancy.DeactivateTenant(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Tenant not found"})
		}
		log.Error("Failed to deactivate tenant", zap.String("tenant_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to deactivate tenant"})
	}

	log.Info("Tenant deactivated", zap.String("tenant_id", id))
	return c.NoContent(http.StatusNoContent)
}

// Refresh reloads the tenant list from the record file
func (h *TenantHandler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("tenant", "refresh")

	defer prometheus.TrackStoreOperation("read")(time.Now())

	if err := h.tenants.Refresh(); err != nil {
		log.Error("Failed to refresh tenants", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to refresh tenants"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(h.tenants.GetAll())})
}
