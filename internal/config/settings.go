package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds process-level configuration read from .env files and the environment.
type Settings struct {
	DatabaseURL    string
	Port           string
	CORSOrigins    []string
	ChunkSize      int
	StaleAfter     time.Duration
	AuditTimeout   time.Duration
	DispatchBuffer int
	LogLevel       string
	LogFormat      string
}

// Load reads settings in order of precedence: environment, .env.local, .env, defaults.
func Load() *Settings {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	return &Settings{
		DatabaseURL:    v.GetString("DATABASE_URL"),
		Port:           v.GetString("PORT"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		ChunkSize:      v.GetInt("CHUNK_SIZE"),
		StaleAfter:     v.GetDuration("CHUNK_STALE_AFTER"),
		AuditTimeout:   v.GetDuration("AUDIT_TIMEOUT"),
		DispatchBuffer: v.GetInt("DISPATCH_BUFFER"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=reconciliation port=5432 sslmode=disable")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("CHUNK_SIZE", 5000)
	v.SetDefault("CHUNK_STALE_AFTER", 2*time.Minute)
	v.SetDefault("AUDIT_TIMEOUT", 15*time.Minute)
	v.SetDefault("DISPATCH_BUFFER", 64)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "auto")
}

// loadEnvFiles loads .env then .env.local; neither overrides variables already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
