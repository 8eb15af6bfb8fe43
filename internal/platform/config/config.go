// Package config builds the immutable process configuration from the
// environment at startup. Components receive the sub-structs they need at
// construction time instead of reading ambient globals.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the server needs.
type Config struct {
	Port          string
	BaseURL       string
	RunMigrations bool

	Database Database
	Redis    Redis
	Token    Token
	Mail     Mail
	Storage  Storage
}

// Database holds the Postgres connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN renders the gorm/pgx connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// Redis holds the cache backend connection settings.
type Redis struct {
	Host     string
	Port     string
	Password string
}

// Addr returns the host:port address for the Redis client.
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// Token holds the signing secret and per-kind token lifetimes.
type Token struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	EmailTTL   time.Duration
}

// Mail holds the SMTP settings for confirmation mail.
type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Storage holds the S3 settings for avatar uploads.
type Storage struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Load reads the configuration from the environment, applying defaults
// suitable for local development.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		Database: Database{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "contacts_app"),
		},
		Redis: Redis{
			Host:     getenv("REDIS_HOST", "localhost"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Token: Token{
			Secret:     os.Getenv("JWT_SECRET"),
			AccessTTL:  getenvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTTL: getenvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
			EmailTTL:   getenvDuration("EMAIL_TOKEN_TTL", 24*time.Hour),
		},
		Mail: Mail{
			Host:     getenv("MAIL_HOST", "localhost"),
			Port:     getenvInt("MAIL_PORT", 465),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     getenv("MAIL_FROM", "noreply@example.com"),
			FromName: getenv("MAIL_FROM_NAME", "Contact Systems"),
		},
		Storage: Storage{
			Bucket:    getenv("S3_BUCKET", "avatars"),
			Region:    getenv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
