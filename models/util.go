package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a new surrogate key for locally owned entities.
func NewID() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// ParseID validates that s is a well-formed surrogate key and returns its
// canonical lowercase form. The second return is false for anything that
// does not parse; callers treat that as "not found", never as an error.
func ParseID(s string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
