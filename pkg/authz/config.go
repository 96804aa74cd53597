package authz

import "os"

// Config controls token verification.
type Config struct {
	Secret string // HMAC secret shared with the auth service.
}

// ConfigFromEnv loads config from environment variables.
// TRANSPORTES_JWT_SECRET
func ConfigFromEnv() *Config {
	return &Config{
		Secret: os.Getenv("TRANSPORTES_JWT_SECRET"),
	}
}
