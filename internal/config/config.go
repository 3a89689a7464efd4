package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// loads .env from the working directory when present
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port                string
	AllowedOrigins      []string
	MatchmakingInterval time.Duration
	WS                  WSConfig
}

type WSConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
}

// LoadConfig reads the environment. Unset variables fall back to development
// defaults; malformed ones are errors.
func LoadConfig() (*Config, error) {
	interval, err := durationEnv("MATCHMAKING_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}
	readBuf, err := intEnv("WS_READ_BUFFER", 1024)
	if err != nil {
		return nil, err
	}
	writeBuf, err := intEnv("WS_WRITE_BUFFER", 1024)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                stringEnv("PORT", "3000"),
		AllowedOrigins:      splitList(stringEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		MatchmakingInterval: interval,
		WS: WSConfig{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
		},
	}
	return cfg, nil
}

// Addr is the listen address for fiber.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive duration, got %q", key, v)
	}
	return d, nil
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
