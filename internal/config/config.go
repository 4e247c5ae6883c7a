package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	CORS     CORSConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// FirebaseConfig locates the service account used for the Firestore client,
// the identity verifier, and FCM.
type FirebaseConfig struct {
	CredentialsFile string
	ProjectID       string
}

// AuthConfig selects the token verifier. Mode "firebase" verifies ID tokens
// against Firebase; mode "local" validates HS256 JWTs signed with JWTSecret
// and exists for development setups without Firebase credentials.
type AuthConfig struct {
	Mode      string
	JWTSecret string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type MinIOConfig struct {
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CORSConfig struct {
	Origins []string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// AdminConfig is the Basic-auth credential pair gating the admin surface.
// Password may be a bcrypt hash ($2 prefix) or a plain value.
type AdminConfig struct {
	Username string
	Password string
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if not exists - e.g. in Docker)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading from environment variables")
	}

	return &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Port: getEnv("APP_PORT", "8000"),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "firebase.json"),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Auth: AuthConfig{
			Mode:      getEnv("AUTH_MODE", "firebase"),
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "whereabout-media"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		CORS: CORSConfig{
			Origins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "1025"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@whereabout.app"),
			FromName: getEnv("SMTP_FROM_NAME", "whereabout"),
		},
		Admin: AdminConfig{
			Username: getEnv("AUTH_USERNAME", ""),
			Password: getEnv("AUTH_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
