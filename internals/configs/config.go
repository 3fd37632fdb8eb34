package configs

import (
	"crypto/rsa"
	"log"
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

var (
	// Kunci publik RS256 dari identity provider (dimuat saat startup).
	JWTPublicKey *rsa.PublicKey

	CourseServiceURL  string
	PaymentServiceURL string
	InternalAPISecret string

	MidtransServerKey string

	StreamAccountID     string
	StreamAPIToken      string
	StreamWebhookSecret string

	FrontendDashURL string
	FrontendPubURL  string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	CourseServiceURL = GetEnv("COURSE_SERVICE_URL", "http://course-service:8083")
	PaymentServiceURL = GetEnv("PAYMENT_SERVICE_URL", "http://payment-service:8084")
	InternalAPISecret = GetEnv("INTERNAL_API_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	StreamAccountID = GetEnv("CF_ACCOUNT_ID")
	StreamAPIToken = GetEnv("CF_STREAM_API_TOKEN")
	StreamWebhookSecret = GetEnv("CF_STREAM_WEBHOOK_SECRET")
	FrontendDashURL = GetEnv("FRONTEND_DASH_URL")
	FrontendPubURL = GetEnv("FRONTEND_PUB_URL")

	if InternalAPISecret == "" {
		log.Println("❌ INTERNAL_API_SECRET belum diset!")
	}
	if MidtransServerKey == "" {
		log.Println("❌ MIDTRANS_SERVER_KEY belum diset!")
	}

	loadJWTPublicKey()
}

func loadJWTPublicKey() {
	path := GetEnv("JWT_PUBLIC_KEY_PATH", "keys/public.key")
	pem, err := os.ReadFile(path)
	if err != nil {
		log.Printf("❌ Gagal membaca kunci publik JWT (%s): %v", path, err)
		return
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		log.Printf("❌ Kunci publik JWT tidak valid: %v", err)
		return
	}
	JWTPublicKey = key
	log.Println("✅ Kunci publik JWT berhasil dimuat.")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
