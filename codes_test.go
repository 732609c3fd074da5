package mcpgate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Format(t *testing.T) {
	codePattern := regexp.MustCompile(`^WLVY-[A-Z0-9]{4}$`)

	for i := 0; i < 50; i++ {
		code, err := GenerateCode("WLVY")
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerateCode_PrefixRoundTrips(t *testing.T) {
	code, err := GenerateCode("GATE")
	require.NoError(t, err)
	assert.Regexp(t, `^GATE-[A-Z0-9]{4}$`, code)
}

func TestGenerateCode_SuccessiveCodesDiffer(t *testing.T) {
	// 36^4 keyspace: 20 draws colliding pairwise would point at a broken RNG.
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		code, err := GenerateCode("WLVY")
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "every generated code was identical")
}

func TestGenerateState_NonEmptyAndUnique(t *testing.T) {
	first := GenerateState()
	second := GenerateState()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestUserIDForCode(t *testing.T) {
	assert.Equal(t, "user-wlvy-ab12", UserIDForCode("WLVY-AB12"))
	assert.Equal(t, "user-gate-0000", UserIDForCode("GATE-0000"))
}
