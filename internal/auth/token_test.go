package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSecret is a 32-byte secret that meets MinSecretLength.
var testSecret = []byte("console-token-test-secret-32byte")

var staff = Identity{Subject: "uid-1", Email: "editor@example.com", Name: "Editor", Role: "ADMIN"}

func TestNewJWTVerifier_WeakSecret(t *testing.T) {
	_, err := NewJWTVerifier([]byte("short"), "")
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestVerify_RoundTrip(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "blog-idp")
	require.NoError(t, err)

	tok, err := v.Generate(staff, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 5*time.Second)

	got.ExpiresAt = time.Time{}
	assert.Equal(t, staff, got)
}

func TestVerify_Expired(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)

	tok, err := v.Generate(staff, -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	other, err := NewJWTVerifier([]byte("another-secret-of-enough-length!"), "")
	require.NoError(t, err)
	tok, err := other.Generate(staff, time.Hour)
	require.NoError(t, err)

	v, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)
	_, err = v.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_IssuerMismatch(t *testing.T) {
	issuerA, err := NewJWTVerifier(testSecret, "issuer-a")
	require.NoError(t, err)
	tok, err := issuerA.Generate(staff, time.Hour)
	require.NoError(t, err)

	issuerB, err := NewJWTVerifier(testSecret, "issuer-b")
	require.NoError(t, err)
	_, err = issuerB.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingClaims(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)

	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	_, err = v.Verify(sign(jwt.MapClaims{"email": "a@example.com", "exp": exp}))
	assert.ErrorIs(t, err, ErrMissingClaim)

	_, err = v.Verify(sign(jwt.MapClaims{"sub": "uid", "exp": exp}))
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "uid", "email": "a@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)
	_, err = v.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
