package mcpgate

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePKCEPair(t *testing.T) {
	verifier, challenge, err := GeneratePKCEPair()
	require.NoError(t, err)

	// 32 random bytes, base64url without padding.
	raw, err := base64.RawURLEncoding.DecodeString(verifier)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.False(t, strings.ContainsAny(verifier, "=+/"))

	sum := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), challenge)
}

func TestChallengeFromVerifier_KnownVector(t *testing.T) {
	// RFC 7636 appendix B vector.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", ChallengeFromVerifier(verifier))
}

func TestValidatePKCEChallenge(t *testing.T) {
	verifier, challenge, err := GeneratePKCEPair()
	require.NoError(t, err)

	assert.True(t, ValidatePKCEChallenge(challenge, verifier))
	assert.False(t, ValidatePKCEChallenge(challenge, verifier+"x"))
	assert.False(t, ValidatePKCEChallenge(challenge, ""))

	otherVerifier, _, err := GeneratePKCEPair()
	require.NoError(t, err)
	assert.False(t, ValidatePKCEChallenge(challenge, otherVerifier))
}
