package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	OpenAIKey     string
	OpenAIModel   string
	MaxConcurrent int
}

// FromEnv loads configuration once at process start. A .env file is applied
// first when present; process environment wins. Loaded values are treated as
// fixed constants for the process lifetime.
func FromEnv() Config {
	_ = godotenv.Load()

	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIModel = getenv("OPENAI_MODEL", "gpt-4.1")
	c.MaxConcurrent = getint("OPENAI_MAX_CONCURRENT_REQUESTS", 2)
	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = 1
	}
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
