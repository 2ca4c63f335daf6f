package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	// .env opsional; di production semua lewat env var
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env tidak ditemukan, pakai environment langsung")
	}

	JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	JWTRefreshSecret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	GoogleClientID = strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))

	if JWTSecret == "" {
		log.Println("[WARNING] JWT_SECRET belum diset")
	}
	if JWTRefreshSecret == "" {
		log.Println("[WARNING] JWT_REFRESH_SECRET belum diset, refresh token nonaktif")
	}
}

func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
