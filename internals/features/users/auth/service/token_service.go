package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/configs"
	authModel "praktikum_backend/internals/features/users/auth/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

const (
	accessTTL  = 2 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

// IssueAccessToken membuat access token HS256 dengan klaim
// user_id, is_admin, name, exp.
func IssueAccessToken(user *userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"is_admin": user.IsAdmin,
		"name":     user.Name,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken membuat refresh token, menyimpan hash-nya, dan
// mengembalikan token mentah untuk dikirim sekali ke klien.
func IssueRefreshToken(db *gorm.DB, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", err
	}
	rec := authModel.RefreshToken{
		UserID:    userID,
		Token:     ComputeRefreshHash(raw),
		ExpiresAt: now.Add(refreshTTL),
	}
	if err := db.Create(&rec).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// ComputeRefreshHash: refresh token disimpan sebagai HMAC-SHA256,
// jadi bocornya tabel tidak membocorkan token yang masih berlaku.
func ComputeRefreshHash(raw string) string {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseRefreshToken memverifikasi refresh JWT dan mengembalikan user ID-nya.
func ParseRefreshToken(raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}

// RevokeRefreshToken menghapus hash token lama (rotasi saat refresh / logout).
func RevokeRefreshToken(db *gorm.DB, raw string) error {
	return db.Where("token = ?", ComputeRefreshHash(raw)).
		Delete(&authModel.RefreshToken{}).Error
}

// BlacklistAccessToken menyimpan access token yang di-logout sampai expire.
func BlacklistAccessToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}).Error
}
