package core

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"aurabot/utils"
)

// NewID generates a new ULID with the given prefix.
// The format is: prefix_ULID
// Example: core.NewID("ir") returns "ir_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	utils.AssertInvariant(prefix != "" && strings.TrimSpace(prefix) != "", "prefix cannot be empty")

	// Generate a new ULID with current timestamp and crypto/rand entropy
	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)

	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + id.String()
}

// IsValidULID checks if the given string is a valid ULID format with prefix.
// The format should be: prefix_ULID where ULID is 26 characters, base32 encoded.
func IsValidULID(id string) bool {
	if id == "" {
		return false
	}

	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		return false
	}

	prefix, ulidPart := parts[0], parts[1]
	if prefix == "" || len(ulidPart) != 26 {
		return false
	}

	_, err := ulid.Parse(ulidPart)
	return err == nil
}
