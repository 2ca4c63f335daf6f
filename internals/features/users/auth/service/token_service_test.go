package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktikum_backend/internals/configs"
	userModel "praktikum_backend/internals/features/users/user/model"
)

func TestIssueAccessToken_KlaimLengkap(t *testing.T) {
	configs.JWTSecret = "rahasia-test"

	user := &userModel.UserModel{
		ID:      uuid.New(),
		Name:    "Budi",
		IsAdmin: true,
	}
	raw, err := IssueAccessToken(user)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("rahasia-test"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, "Budi", claims["name"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestComputeRefreshHash_Deterministik(t *testing.T) {
	configs.JWTRefreshSecret = "refresh-test"

	h1 := ComputeRefreshHash("token-a")
	h2 := ComputeRefreshHash("token-a")
	h3 := ComputeRefreshHash("token-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // hex sha256
	assert.NotContains(t, h1, "token-a")
}

func TestParseRefreshToken_BolakBalik(t *testing.T) {
	configs.JWTRefreshSecret = "refresh-test"

	userID := uuid.New()
	now := time.Now()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte(configs.JWTRefreshSecret))
	require.NoError(t, err)

	got, err := ParseRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// token dengan secret lain ditolak
	salah, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte("secret-lain"))
	require.NoError(t, err)

	_, err = ParseRefreshToken(salah)
	assert.Error(t, err)
}
