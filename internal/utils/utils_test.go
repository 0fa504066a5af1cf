package utils_test

import (
	"regexp"
	"testing"
	"time"

	"classmanager/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@school.com", utils.NormalizeEmail("  Ana@School.COM "))
}

func TestRandomDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := utils.RandomDigits(6)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	manager := utils.JWTManager{Secret: []byte("secret"), Issuer: "classmanager", AccessTokenTTL: time.Minute}

	token, ttl, err := manager.IssueAccessToken("user-1", "teacher")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	claims, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "teacher", claims.Profile)
}

func TestJWTRejectsForeignSecretAndExpiredTokens(t *testing.T) {
	manager := utils.JWTManager{Secret: []byte("secret"), Issuer: "classmanager"}
	other := utils.JWTManager{Secret: []byte("other"), Issuer: "classmanager"}

	token, _, err := other.IssueAccessToken("user-1", "teacher")
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.AccessClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "classmanager",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestJWTExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	current := issuedAt
	manager := utils.JWTManager{
		Secret:         []byte("secret"),
		Issuer:         "classmanager",
		AccessTokenTTL: 10 * time.Minute,
		Now:            func() time.Time { return current },
	}

	token, _, err := manager.IssueAccessToken("user-1", "teacher")
	require.NoError(t, err)

	current = issuedAt.Add(9 * time.Minute)
	_, err = manager.ParseAccessToken(token)
	require.NoError(t, err)

	current = issuedAt.Add(11 * time.Minute)
	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestJWTRejectsOtherIssuerAndAlgorithm(t *testing.T) {
	manager := utils.JWTManager{Secret: []byte("secret"), Issuer: "classmanager"}

	foreign := utils.JWTManager{Secret: []byte("secret"), Issuer: "elsewhere"}
	token, _, err := foreign.IssueAccessToken("user-1", "teacher")
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, utils.AccessClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "classmanager",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
