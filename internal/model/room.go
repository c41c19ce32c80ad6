package model

import (
	"fmt"
	"strings"
)

// Room types
const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
	RoomTypeVIP    = "VIP"
)

// Room statuses
const (
	RoomStatusAvailable = "Available"
	RoomStatusOccupied  = "Occupied"
)

// RoomIDPrefix is the alphabetic prefix of room identifiers (R001, R002, ...)
const RoomIDPrefix = "R"

// roomMinFields is the minimum field count of a room record line; the image
// path is optional.
const roomMinFields = 7

// Room represents a rentable unit with a monthly price and occupancy status
type Room struct {
	ID         string  `json:"id"`
	RoomNumber string  `json:"room_number"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Size       string  `json:"size"`
	Amenities  string  `json:"amenities"`
	Status     string  `json:"status"`
	ImagePath  string  `json:"image_path,omitempty"`
}

// Record serializes the room to one delimited line
func (r Room) Record() string {
	return strings.Join([]string{
		r.ID,
		r.RoomNumber,
		r.Type,
		formatAmount(r.Price),
		r.Size,
		r.Amenities,
		r.Status,
		r.ImagePath,
	}, Delimiter)
}

// ParseRoom parses one delimited line into a Room
func ParseRoom(line string) (Room, error) {
	fields, err := splitRecord(line, roomMinFields)
	if err != nil {
		return Room{}, fmt.Errorf("room record: %w", err)
	}

	price, err := parseAmount(fields[3])
	if err != nil {
		return Room{}, fmt.Errorf("room record: %w", err)
	}

	room := Room{
		ID:         fields[0],
		RoomNumber: fields[1],
		Type:       fields[2],
		Price:      price,
		Size:       fields[4],
		Amenities:  fields[5],
		Status:     fields[6],
	}
	if len(fields) > 7 {
		room.ImagePath = fields[7]
	}
	return room, nil
}

// ParseRooms parses a loaded file into rooms plus skipped-line diagnostics
func ParseRooms(lines []string) ([]Room, []SkippedLine) {
	rooms := make([]Room, 0, len(lines))
	var skipped []SkippedLine
	for i, line := range lines {
		room, err := ParseRoom(line)
		if err != nil {
			skipped = append(skipped, SkippedLine{Number: i + 1, Line: line, Reason: err.Error()})
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, skipped
}
