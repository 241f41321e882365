package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// secretLength is the length of generated clear secrets
const secretLength = 10

// GenerateSecret returns a random clear secret for a new or reset
// account. The caller is responsible for delivering it to the owner;
// only its hash is ever persisted.
func GenerateSecret() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:secretLength]
}

// HashSecret computes the one-way hash stored for a secret. The
// digest is deterministic: credential checks recompute it and compare
// against the stored value.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
