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

// RoomRequest defines the structure for room creation/update requests
type RoomRequest struct {
	RoomNumber string  `json:"room_number"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Size       string  `json:"size"`
	Amenities  string  `json:"amenities"`
	Status     string  `json:"status"`
	ImagePath  string  `json:"image_path"`
}

// RoomHandler serves room CRUD requests
type RoomHandler struct {
	rooms *repository.RoomRepository
}

// NewRoomHandler creates the handler
func NewRoomHandler(rooms *repository.RoomRepository) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Create creates a new room
func (h *RoomHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("room", "create")

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.RoomNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number is required"})
	}
	if !validRoomType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be Single, Double or VIP"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}
	if req.Status == "" {
		req.Status = model.RoomStatusAvailable
	}
	if !validRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Available or Occupied"})
	}

	room := model.Room{
		ID:         h.rooms.GenerateNewID(),
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Price:      req.Price,
		Size:       req.Size,
		Amenities:  req.Amenities,
		Status:     req.Status,
		ImagePath:  req.ImagePath,
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.rooms.Create(room); err != nil {
		log.Error("Failed to create room",
			zap.String("room_id", room.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create room"})
	}

	log.Info("Room created",
		zap.String("room_id", room.ID),
		zap.String("room_number", room.RoomNumber))
	return c.JSON(http.StatusCreated, room)
}

// List returns all rooms, optionally filtered by status
func (h *RoomHandler) List(c echo.Context) error {
	prometheus.RecordOperation("room", "list")

	rooms := h.rooms.GetAll()

	status := c.QueryParam("status")
	if status != "" {
		filtered := make([]model.Room, 0, len(rooms))
		for _, room := range rooms {
			if room.Status == status {
				filtered = append(filtered, room)
			}
		}
		rooms = filtered
	}

	return c.JSON(http.StatusOK, echo.Map{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// Get returns a room by id
func (h *RoomHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("room", "get")

	id := c.Param("id")
	room, ok := h.rooms.GetByID(id)
	if !ok {
		log.Warn("Room not found", zap.String("room_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	return c.JSON(http.StatusOK, room)
}

// Update replaces a room's fields; the id is immutable
func (h *RoomHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("room", "update")

	id := c.Param("id")

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("room_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.RoomNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number is required"})
	}
	if !validRoomType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be Single, Double or VIP"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}

	existing, ok := h.rooms.GetByID(id)
	if !ok {
		log.Warn("Room not found for update", zap.String("room_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}

	// Occupancy status changes go through the status endpoint or the
	// tenant lifecycle, not a field update.
	room := model.Room{
		ID:         existing.ID,
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Price:      req.Price,
		Size:       req.Size,
		Amenities:  req.Amenities,
		Status:     existing.Status,
		ImagePath:  req.ImagePath,
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.rooms.Update(room); err != nil {
		log.Error("Failed to update room", zap.String("room_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update room"})
	}

	log.Info("Room updated", zap.String("room_id", id))
	return c.JSON(http.StatusOK, room)
}

// UpdateStatus explicitly flips a room's occupancy status
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("room", "update_status")

	id := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !validRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Available or Occupied"})
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.rooms.SetStatus(id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
		}
		log.Error("Failed to update room status", zap.String("room_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update room status"})
	}

	log.Info("Room status updated",
		zap.String("room_id", id),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// Delete removes a room; occupied rooms cannot be deleted
func (h *RoomHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("room", "delete")

	id := c.Param("id")

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.rooms.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
		}
		if errors.Is(err, repository.ErrRoomOccupied) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Room is occupied"})
		}
		log.Error("Failed to delete room", zap.String("room_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete room"})
	}

	log.Info("Room deleted", zap.String("room_id", id))
	return c.NoContent(http.StatusNoContent)
}

// Refresh reloads the room list from the record file
func (h *RoomHandler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("room", "refresh")

	defer prometheus.TrackStoreOperation("read")(time.Now())

	if err := h.rooms.Refresh(); err != nil {
		log.Error("Failed to refresh rooms", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to refresh rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(h.rooms.GetAll())})
}
