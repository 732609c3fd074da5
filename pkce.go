package mcpgate

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const verifierLength = 32

// GeneratePKCEPair creates a fresh verifier/challenge pair binding a code to
// the party that requested it. The verifier is 32 random bytes base64url
// encoded without padding; the challenge is the base64url (no padding) of the
// verifier's SHA-256 digest (the S256 method).
func GeneratePKCEPair() (verifier, challenge string, err error) {
	buf := make([]byte, verifierLength)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	verifier = base64.RawURLEncoding.EncodeToString(buf)
	return verifier, ChallengeFromVerifier(verifier), nil
}

// ChallengeFromVerifier derives the S256 challenge for a verifier.
func ChallengeFromVerifier(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// ValidatePKCEChallenge reports whether a client-supplied verifier derives the
// stored challenge.
func ValidatePKCEChallenge(challenge, verifier string) bool {
	return challenge == ChallengeFromVerifier(verifier)
}
