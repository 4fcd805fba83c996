package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eastlinkgh/connect/internal/auth"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := auth.NewHasher()

	first, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)

	second, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)

	// Хеш солёный: два вызова дают разные строки
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "s3cret-password", first)

	assert.True(t, hasher.Verify("s3cret-password", first))
	assert.True(t, hasher.Verify("s3cret-password", second))
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	hasher := auth.NewHasher()

	hashed, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	testCases := []struct {
		name      string
		plaintext string
		hashed    string
	}{
		{name: "Wrong password", plaintext: "battery staple", hashed: hashed},
		{name: "Empty password", plaintext: "", hashed: hashed},
		{name: "Malformed hash", plaintext: "correct horse", hashed: "not-a-bcrypt-hash"},
		{name: "Empty hash", plaintext: "correct horse", hashed: ""},
		{name: "Plaintext stored instead of hash", plaintext: "correct horse", hashed: "correct horse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Любая проблема — просто false, без паник и ошибок
			assert.False(t, hasher.Verify(tc.plaintext, tc.hashed))
		})
	}
}
