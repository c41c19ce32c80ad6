package repository

import (
	"fmt"
	"sync"

	"kost-service/internal/model"
	"kost-service/pkg/textstore"

	"go.uber.org/zap"
)

// RoomFile is the record file holding room records
const RoomFile = "rooms.txt"

// RoomRepository is the owning store for room records
type RoomRepository struct {
	mu    sync.RWMutex
	store *textstore.Store
	log   *zap.Logger
	rooms []model.Room
}

// NewRoomRepository creates the repository and loads the room file
func NewRoomRepository(store *textstore.Store, log *zap.Logger) (*RoomRepository, error) {
	r := &RoomRepository{
		store: store,
		log:   log.With(zap.String("repository", "rooms")),
	}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh discards the in-memory list and reloads it from the record file.
// Malformed lines are skipped with a warning, never fatal.
func (r *RoomRepository) Refresh() error {
	lines, err := r.store.ReadAllLines(RoomFile)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}

	rooms, skipped := model.ParseRooms(lines)
	for _, s := range skipped {
		r.log.Warn("skipping malformed room record",
			zap.Int("line", s.Number),
			zap.String("reason", s.Reason))
	}

	r.mu.Lock()
	r.rooms = rooms
	r.mu.Unlock()
	return nil
}

// save rewrites the full record file. Callers must hold the write lock.
func (r *RoomRepository) save() error {
	lines := make([]string, len(r.rooms))
	for i, room := range r.rooms {
		lines[i] = room.Record()
	}
	return r.store.WriteAllLines(RoomFile, lines)
}

// Create appends the room and persists the full list. On a failed save the
// appended room is removed again.
func (r *RoomRepository) Create(room model.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = append(r.rooms, room)
	if err := r.save(); err != nil {
		r.rooms = r.rooms[:len(r.rooms)-1]
		return fmt.Errorf("create room %s: %w", room.ID, err)
	}
	return nil
}

// GetAll returns a copy of all rooms; mutating it does not affect the repository
func (r *RoomRepository) GetAll() []model.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]model.Room, len(r.rooms))
	copy(rooms, r.rooms)
	return rooms
}

// GetByID returns the room with the given id
func (r *RoomRepository) GetByID(id string) (model.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return model.Room{}, false
}

// Update replaces the room with the same id and persists the full list. On a
// failed save the previous record is restored.
func (r *RoomRepository) Update(room model.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(room.ID)
	if idx < 0 {
		return fmt.Errorf("update room %s: %w", room.ID, ErrNotFound)
	}

	prev := r.rooms[idx]
	r.rooms[idx] = room
	if err := r.save(); err != nil {
		r.rooms[idx] = prev
		return fmt.Errorf("update room %s: %w", room.ID, err)
	}
	return nil
}

// SetStatus flips the occupancy status of a room and persists the change
func (r *RoomRepository) SetStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("set room %s status: %w", id, ErrNotFound)
	}

	prev := r.rooms[idx]
	r.rooms[idx].Status = status
	if err := r.save(); err != nil {
		r.rooms[idx] = prev
		return fmt.Errorf("set room %s status: %w", id, err)
	}
	return nil
}

// SetStatusIf flips the room status only when the current status matches
// from, returning ErrRoomOccupied otherwise. The check and the flip happen
// under one lock, so two concurrent callers cannot both win the same
// transition.
func (r *RoomRepository) SetStatusIf(id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("set room %s status: %w", id, ErrNotFound)
	}
	if r.rooms[idx].Status != from {
		return fmt.Errorf("set room %s status: %w", id, ErrRoomOccupied)
	}

	prev := r.rooms[idx]
	r.rooms[idx].Status = to
	if err := r.save(); err != nil {
		r.rooms[idx] = prev
		return fmt.Errorf("set room %s status: %w", id, err)
	}
	return nil
}

// Delete removes the room and persists the full list. Occupied rooms cannot
// be deleted. On a failed save the room is re-inserted.
func (r *RoomRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete room %s: %w", id, ErrNotFound)
	}
	if r.rooms[idx].Status == model.RoomStatusOccupied {
		return fmt.Errorf("delete room %s: %w", id, ErrRoomOccupied)
	}

	removed := r.rooms[idx]
	r.rooms = append(r.rooms[:idx], r.rooms[idx+1:]...)
	if err := r.save(); err != nil {
		r.rooms = append(r.rooms[:idx], append([]model.Room{removed}, r.rooms[idx:]...)...)
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	return nil
}

// GenerateNewID returns the next sequential room id (R001, R002, ...)
func (r *RoomRepository) GenerateNewID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.rooms))
	for i, room := range r.rooms {
		ids[i] = room.ID
	}
	return nextID(model.RoomIDPrefix, ids)
}

// CountByStatus returns the number of rooms with the given status
func (r *RoomRepository) CountByStatus(status string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, room := range r.rooms {
		if room.Status == status {
			count++
		}
	}
	return count
}

// Available returns the rooms currently available for assignment
func (r *RoomRepository) Available() []model.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rooms []model.Room
	for _, room := range r.rooms {
		if room.Status == model.RoomStatusAvailable {
			rooms = append(rooms, room)
		}
	}
	return rooms
}

func (r *RoomRepository) indexOf(id string) int {
	for i, room := range r.rooms {
		if room.ID == id {
			return i
		}
	}
	return -1
}
