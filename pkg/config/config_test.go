package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DatabaseConfig(t *testing.T) {
	os.Setenv("DB_PATH", "/tmp/test-doctors.db")
	os.Setenv("CSV_DIR", "/tmp/csv")
	defer func() {
		os.Unsetenv("DB_PATH")
		os.Unsetenv("CSV_DIR")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "/tmp/test-doctors.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/csv", cfg.Database.CSVDir)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("DB_PATH")
	os.Unsetenv("CSV_DIR")
	os.Unsetenv("CHAT_MAX_DOCTORS")
	os.Unsetenv("CHAT_MAX_HISTORY")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "doctors.db", cfg.Database.Path)
	assert.Equal(t, ".", cfg.Database.CSVDir)
	assert.Equal(t, 5, cfg.Chat.MaxDoctors)
	assert.Equal(t, 10, cfg.Chat.MaxHistory)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-port")
	defer os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
