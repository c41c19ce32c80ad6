package model

import (
	"fmt"
	"strings"
)

// User roles
const (
	UserRoleAdmin = "admin"
	UserRoleStaff = "staff"
)

// UserIDPrefix is the alphabetic prefix of user identifiers (U001, ...)
const UserIDPrefix = "U"

const userMinFields = 5

// User represents an application account that can sign in
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
}

// Record serializes the user to one delimited line
func (u User) Record() string {
	return strings.Join([]string{
		u.ID,
		u.Username,
		u.PasswordHash,
		u.FullName,
		u.Role,
	}, Delimiter)
}

// ParseUser parses one delimited line into a User
func ParseUser(line string) (User, error) {
	fields, err := splitRecord(line, userMinFields)
	if err != nil {
		return User{}, fmt.Errorf("user record: %w", err)
	}

	return User{
		ID:           fields[0],
		Username:     fields[1],
		PasswordHash: fields[2],
		FullName:     fields[3],
		Role:         fields[4],
	}, nil
}

// ParseUsers parses a loaded file into users plus skipped-line diagnostics
func ParseUsers(lines []string) ([]User, []SkippedLine) {
	users := make([]User, 0, len(lines))
	var skipped []SkippedLine
	for i, line := range lines {
		user, err := ParseUser(line)
		if err != nil {
			skipped = append(skipped, SkippedLine{Number: i + 1, Line: line, Reason: err.Error()})
			continue
		}
		users = append(users, user)
	}
	return users, skipped
}
