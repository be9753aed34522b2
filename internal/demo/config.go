package demo

import (
	"os"
	"strconv"
)

// Config holds the demo server configuration
type Config struct {
	Port    int
	Adapter string
}

// LoadConfig reads PORT and VIEWCHECK_ADAPTER from the environment
func LoadConfig() *Config {
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	return &Config{
		Port:    port,
		Adapter: getEnvOrDefault("VIEWCHECK_ADAPTER", "echo"),
	}
}

// Addr is the listen address
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
