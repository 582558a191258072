package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// AppConfig holds everything the server reads from the environment.
type AppConfig struct {
	Port      string
	Location  *time.Location
	OwnerName string

	Admin   AdminConfig
	Store   StoreConfig
	Resume  ResumeConfig
	SMTP    SMTPConfig
	Origins []string

	VisitorRetention time.Duration
}

type AdminConfig struct {
	Email         string
	Password      string
	UID           string
	SessionSecret string
}

// StoreConfig selects the record backend. Backend is "sqlite" or "firestore".
type StoreConfig struct {
	Backend    string
	ProjectID  string
	SQLitePath string
}

type ResumeConfig struct {
	Bucket string
}

type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	ToEmail string
}

// Enabled reports whether credentials were provided.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

// LoadAppConfig reads the environment once and caches the result.
func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = Load()
	})
	return appConfig
}

// Load reads the environment without caching.
func Load() *AppConfig {
	cfg := &AppConfig{
		Port:      GetEnv("PORT", "8080"),
		Location:  loadLocation(GetEnv("APP_TIMEZONE", "")),
		OwnerName: strings.ReplaceAll(GetEnv("OWNER_NAME", "Zach_Kordas"), " ", "_"),
		Admin: AdminConfig{
			Email:         GetEnv("ADMIN_EMAIL", ""),
			Password:      GetEnv("ADMIN_PASSWORD", ""),
			UID:           GetEnv("ADMIN_UID", "admin"),
			SessionSecret: GetEnv("SESSION_SECRET", ""),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(GetEnv("STORE_BACKEND", "sqlite")),
			ProjectID:  GetEnv("FIRESTORE_PROJECT_ID", ""),
			SQLitePath: GetEnv("SQLITE_PATH", "portfolio.db"),
		},
		Resume: ResumeConfig{
			Bucket: GetEnv("RESUME_BUCKET", ""),
		},
		SMTP: SMTPConfig{
			Host:    GetEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:    GetEnv("SMTP_PORT", "587"),
			User:    GetEnv("SMTP_USER", ""),
			Pass:    GetEnv("SMTP_PASS", ""),
			ToEmail: GetEnv("TO_EMAIL", ""),
		},
		Origins:          splitList(GetEnv("ALLOWED_ORIGINS", "")),
		VisitorRetention: time.Duration(getInt("VISITOR_RETENTION_DAYS", 365)) * 24 * time.Hour,
	}

	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@example.com"
		log.Println("WARNING: Using default admin email. Set ADMIN_EMAIL environment variable.")
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	if cfg.Admin.SessionSecret == "" {
		cfg.Admin.SessionSecret = randomSecret()
		log.Println("SESSION_SECRET not set, sessions will not survive a restart")
	}
	return cfg
}

// GetEnv reads an environment variable or returns a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate session secret:", err)
	}
	return hex.EncodeToString(b)
}
