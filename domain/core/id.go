package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SessionID identifies one viewer and the selection it owns.
type SessionID ID

func (id SessionID) String() string { return ID(id).String() }

// NewSessionID returns a fresh viewer session identifier.
func NewSessionID() SessionID {
	return SessionID(NewID())
}

// ParseSessionID accepts only well-formed UUIDs, in canonical form.
func ParseSessionID(s string) (SessionID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid session ID: %w", err)
	}
	return SessionID(parsed.String()), nil
}

// RecordID is the position of a record in the loaded dataset.
type RecordID int

func (id RecordID) String() string { return strconv.Itoa(int(id)) }

// ParseRecordID parses a non-negative record position.
func ParseRecordID(s string) (RecordID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("record ID cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("record ID %q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("record ID %d is negative", n)
	}
	return RecordID(n), nil
}
