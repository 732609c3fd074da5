package mcpgate

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// codeAlphabet is the 36-symbol alphabet for the human-enterable part of a
// code. 4 symbols give a keyspace of 36^4; collisions are left to the store's
// key uniqueness, there is no retry.
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 4
)

// GenerateCode produces a one-time code of the form PREFIX-XXXX.
func GenerateCode(prefix string) (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte('-')
	for _, b := range buf {
		sb.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return sb.String(), nil
}

// GenerateState produces an opaque correlation value for callers that did not
// supply one of their own.
func GenerateState() string {
	return uuid.NewString()
}

// UserIDForCode derives the placeholder identity bound to a minted token.
// Deterministic: there is no user directory behind the gateway.
func UserIDForCode(code string) string {
	return "user-" + strings.ToLower(code)
}
