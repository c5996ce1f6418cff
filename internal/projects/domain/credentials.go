package domain

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// NewProjectID generates a human-shareable project id, e.g. "PRJ-AB12CD".
// Collisions are possible in principle; the insert path retries on the
// unique violation.
func NewProjectID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("PRJ-%s", strings.ToUpper(hex.EncodeToString(b))), nil
}

// NewAccessPassword generates the client's one-time-shown access password.
func NewAccessPassword() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
