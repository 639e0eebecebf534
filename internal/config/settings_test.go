package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("PORT", "")

	s := Load()
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 5000, s.ChunkSize)
	assert.Equal(t, 2*time.Minute, s.StaleAfter)
	assert.Equal(t, 15*time.Minute, s.AuditTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, s.CORSOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "250")
	t.Setenv("CHUNK_STALE_AFTER", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	s := Load()
	assert.Equal(t, 250, s.ChunkSize)
	assert.Equal(t, 90*time.Second, s.StaleAfter)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.CORSOrigins)
}
