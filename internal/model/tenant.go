package model

import (
	"fmt"
	"strings"
	"time"
)

// Tenant statuses
const (
	TenantStatusActive   = "Active"
	TenantStatusInactive = "Inactive"
)

// TenantIDPrefix is the alphabetic prefix of tenant identifiers (T001, ...)
const TenantIDPrefix = "T"

const tenantMinFields = 7

// Tenant represents a person renting a room. Tenants are never physically
// deleted; deactivation keeps the record for history.
type Tenant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	RoomID     string    `json:"room_id"`
	MoveInDate time.Time `json:"move_in_date"`
	Status     string    `json:"status"`
}

// Record serializes the tenant to one delimited line
func (t Tenant) Record() string {
	return strings.Join([]string{
		t.ID,
		t.Name,
		t.Phone,
		t.Email,
		t.RoomID,
		formatDate(t.MoveInDate),
		t.Status,
	}, Delimiter)
}

// ParseTenant parses one delimited line into a Tenant
func ParseTenant(line string) (Tenant, error) {
	fields, err := splitRecord(line, tenantMinFields)
	if err != nil {
		return Tenant{}, fmt.Errorf("tenant record: %w", err)
	}

	moveIn, err := parseDate(fields[5])
	if err != nil {
		return Tenant{}, fmt.Errorf("tenant record: %w", err)
	}

	return Tenant{
		ID:         fields[0],
		Name:       fields[1],
		Phone:      fields[2],
		Email:      fields[3],
		RoomID:     fields[4],
		MoveInDate: moveIn,
		Status:     fields[6],
	}, nil
}

// ParseTenants parses a loaded file into tenants plus skipped-line diagnostics
func ParseTenants(lines []string) ([]Tenant, []SkippedLine) {
	tenants := make([]Tenant, 0, len(lines))
	var skipped []SkippedLine
	for i, line := range lines {
		tenant, err := ParseTenant(line)
		if err != nil {
			skipped = append(skipped, SkippedLine{Number: i + 1, Line: line, Reason: err.Error()})
			continue
		}
		tenants = append(tenants, tenant)
	}
	return tenants, skipped
}
