package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	Port       string
	AppEnv     string
	AppURL     string
	DBDriver   string
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	SessionKey   string
	AppAuthKey   string
	AppEncKey    string
	CSRFKey      string
	CookieSecure bool

	ViewsDir   string
	PublicDir  string
	LocalesDir string

	StorageDisk string
	S3Bucket    string
	S3Region    string
	S3Key       string
	S3Secret    string
	S3Endpoint  string
	S3URL       string

	ShippingFee decimal.Decimal
	DefaultLang string
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		Port:       getEnv("APP_PORT", ":3000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppURL:     getEnv("APP_URL", "http://localhost:3000"),
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "./database/cristobal.db"),
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		SessionKey:   getEnv("SESSION_KEY", "cristobal_secret_key_123"),
		AppAuthKey:   os.Getenv("APP_AUTH_KEY"),
		AppEncKey:    os.Getenv("APP_ENC_KEY"),
		CSRFKey:      os.Getenv("CSRF_KEY"),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		ViewsDir:   getEnv("VIEWS_DIR", "./views"),
		PublicDir:  getEnv("PUBLIC_DIR", "./public"),
		LocalesDir: getEnv("LOCALES_DIR", "./locales"),

		StorageDisk: getEnv("STORAGE_DISK", "local"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Key:       os.Getenv("S3_KEY"),
		S3Secret:    os.Getenv("S3_SECRET"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3URL:       os.Getenv("S3_URL"),

		ShippingFee: getEnvDecimal("SHIPPING_FEE", decimal.NewFromInt(300)),
		DefaultLang: getEnv("DEFAULT_LANG", "tr"),
	}
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("LoadEnv: invalid boolean for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		log.Printf("LoadEnv: invalid decimal for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
