package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, exp, err := m.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, _, err := m.Issue(uuid.New())
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMalformedToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := m.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken, "token: %q", token)
	}
}

func TestValidateTamperedToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, _, err := m.Issue(uuid.New())
	require.NoError(t, err)

	// Alter the first character so the decoded header no longer matches
	// what was signed.
	flipped := byte('f')
	if token[0] == 'f' {
		flipped = 'g'
	}
	tampered := string(flipped) + token[1:]

	_, err = m.Validate(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	// alg=none with the standard claims layout must not pass.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateNonUUIDSubject(t *testing.T) {
	secret := "test-secret"
	m := NewTokenManager(secret, time.Hour)

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := signed.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	// ValidateSubject hands back the raw claim for the caller to parse.
	sub, err := m.ValidateSubject(token)
	require.NoError(t, err)
	require.Equal(t, "not-a-uuid", sub)
}

func TestValidateSubjectRoundtrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, _, err := m.Issue(userID)
	require.NoError(t, err)

	sub, err := m.ValidateSubject(token)
	require.NoError(t, err)
	require.Equal(t, userID.String(), sub)

	_, err = m.ValidateSubject("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}
