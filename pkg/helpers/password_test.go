package helpers

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)

	require.True(t, VerifyPassword("same password", h1))
	require.True(t, VerifyPassword("same password", h2))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	require.True(t, VerifyPassword("s3cret-pass", hash))
	require.False(t, VerifyPassword("wrong-pass", hash))
	require.False(t, VerifyPassword("", hash))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash",
		"$argon2id$v=19$m=19456,t=2,p=1$onlyfourparts",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$a2V5",
		"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",
		"$argon2id$v=19$m=19456,t=2,p=0$c2FsdA$a2V5",
	}
	for _, encoded := range cases {
		require.False(t, VerifyPassword("anything", encoded), "hash: %q", encoded)
	}
}

func TestVerifyPasswordHonorsEmbeddedParams(t *testing.T) {
	// A hash produced with different cost parameters still verifies because
	// the stored string carries them.
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("legacy password"), salt, 1, 1024, 1, 32)
	encoded := fmt.Sprintf("$argon2id$v=19$m=1024,t=1,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	require.True(t, VerifyPassword("legacy password", encoded))
	require.False(t, VerifyPassword("other password", encoded))
}
