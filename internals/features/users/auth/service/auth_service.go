package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"praktikum_backend/internals/configs"
	authDTO "praktikum_backend/internals/features/users/auth/dto"
	authModel "praktikum_backend/internals/features/users/auth/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
)

var validate = validator.New()

/* ===================== REGISTER ===================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := userModel.UserModel{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		NIM:      req.NIM,
	}
	if err := db.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi berhasil", user.Public())
}

/* ===================== LOGIN ===================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	return issueLoginResponse(db, c, &user)
}

/* ===================== GOOGLE LOGIN ===================== */

func GoogleLogin(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Google token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Google token tidak bisa dibaca")
	}

	email := strings.ToLower(claimSet.Email)
	var user userModel.UserModel
	err = db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Akun baru via Google: password acak, wajib reset untuk login manual.
		randomPwd, herr := bcrypt.GenerateFromPassword([]byte(time.Now().String()+email), bcrypt.DefaultCost)
		if herr != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
		user = userModel.UserModel{
			Name:     claimSet.Name,
			Email:    email,
			Password: string(randomPwd),
		}
		if cerr := db.Create(&user).Error; cerr != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
	} else if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return issueLoginResponse(db, c, &user)
}

/* ===================== SESSION ===================== */

func issueLoginResponse(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel) error {
	access, err := IssueAccessToken(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refresh, err := IssueRefreshToken(db, user.ID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	return helper.Success(c, "Login berhasil", authDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Public(),
	})
}

// RefreshToken merotasi refresh token dan menerbitkan access baru.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Refresh token tidak ada")
	}

	userID, err := ParseRefreshToken(body.RefreshToken)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// Hash-nya harus masih terdaftar & belum dicabut
	var rec authModel.RefreshToken
	if err := db.First(&rec, "token = ? AND revoked = false", ComputeRefreshHash(body.RefreshToken)).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}
	if time.Now().After(rec.ExpiresAt) {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token kedaluwarsa")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	// ROTATE: token lama hangus
	if err := RevokeRefreshToken(db, body.RefreshToken); err != nil {
		log.Printf("[refresh] gagal hapus hash lama: %v", err)
	}

	return issueLoginResponse(db, c, &user)
}

// Logout memasukkan access token ke blacklist dan mencabut refresh token.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Token tidak ada")
	}

	expiredAt := time.Now().Add(accessTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}
	if err := BlacklistAccessToken(db, tokenString, expiredAt); err != nil && !helper.IsUniqueViolation(err) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err == nil && body.RefreshToken != "" {
		if err := RevokeRefreshToken(db, body.RefreshToken); err != nil {
			log.Printf("[logout] gagal cabut refresh token: %v", err)
		}
	}

	return helper.Success(c, "Logout berhasil", nil)
}

// Me mengembalikan profil user dari token yang sedang dipakai.
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.Success(c, "OK", user.Public())
}
