package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidID is returned when a job ID is not a canonical UUID.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidKey is returned when a book key contains characters no
	// canonical key can hold.
	ErrInvalidKey = errors.New("invalid key")
)

// ValidateJobID checks that id is the canonical string form of a UUID, the
// only form JobStore hands out.
//
// Security considerations:
//   - IDs come straight from URL paths
//   - Rejecting non-canonical forms keeps log lines and map keys uniform
func ValidateJobID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidID)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if parsed.String() != strings.ToLower(id) {
		return fmt.Errorf("%w: ID is not in canonical form", ErrInvalidID)
	}
	return nil
}

// ValidateBookKey checks that key is made of lower-case letters, digits
// and hyphens, like every canonical key.
func ValidateBookKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	if len(key) > 32 {
		return fmt.Errorf("%w: key too long", ErrInvalidKey)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return fmt.Errorf("%w: unexpected character %q", ErrInvalidKey, r)
		}
	}
	return nil
}
