// Package repository owns the in-memory record lists backed by the flat-file
// store. Each entity has one long-lived repository, constructed at startup and
// shared for the process lifetime. Every mutation rewrites the full record
// file; a failed write rolls the in-memory list back to its previous state.
package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned when an id-based lookup finds no match
var ErrNotFound = errors.New("record not found")

// ErrRoomOccupied is returned when an operation requires an available room
var ErrRoomOccupied = errors.New("room is occupied")

// idWidth is the zero-padded numeric width of all generated identifiers
const idWidth = 3

// nextID produces the next sequential identifier for the given prefix:
// the maximum numeric suffix across existing ids plus one, zero-padded.
// Ids that do not follow the prefix/number convention are ignored.
func nextID(prefix string, ids []string) string {
	max := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, idWidth, max+1)
}
