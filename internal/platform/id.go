// Package platform holds small helpers shared by every layer.
package platform

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// secretBytes is the entropy of a generated API key secret.
const secretBytes = 32

// NewID returns a random UUID string. Every billing row uses one as its
// primary key.
func NewID() string {
	return uuid.New().String()
}

// NewSecret returns a prefixed random token used as API key material. The
// prefix keeps leaked keys recognizable in logs and support tickets.
func NewSecret(prefix string) string {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}
