// Package config provides configuration management for the webhook verifier
// service. It handles loading configuration from environment variables with
// sensible defaults and validates the configuration to ensure the service
// starts safely.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - TLS_CERT_FILE: TLS certificate path (optional, enables HTTPS)
//   - TLS_KEY_FILE: TLS private key path (required with TLS_CERT_FILE)
//
// Webhook Verification:
//   - WEBHOOK_SIGNATURE_HEADER: Request header carrying the signature
//     string (default: x-ik-signature)
//   - WEBHOOK_SECRET: Shared secret used for sources without a dedicated
//     secret
//   - WEBHOOK_SECRET_<SOURCE>: Per-source shared secret, e.g.
//     WEBHOOK_SECRET_IMAGEKIT applies to deliveries on /webhook/imagekit
//   - WEBHOOK_TOLERANCE: Replay window; deliveries whose verified
//     timestamp is further than this from now are rejected
//     (default: 5m, "0" disables the check)
//
// Example usage:
//
//	cfg := config.Load()
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid configuration: %v", err)
//	}
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the webhook verifier service.
// All fields correspond to environment variables that can be set to
// override the default values.
//
// The configuration is loaded using the Load() function and should be
// validated using the Validate() method before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)
	TLSCert  string // TLS certificate file path
	TLSKey   string // TLS private key file path

	// Webhook verification settings
	SignatureHeader string            // Request header carrying the signature string
	DefaultSecret   string            // Shared secret for sources without a dedicated one
	SourceSecrets   map[string]string // Per-source shared secrets, keyed by lowercase source name
	Tolerance       time.Duration     // Replay window; zero disables the freshness check
}

// secretEnvPrefix is the prefix of per-source secret variables.
const secretEnvPrefix = "WEBHOOK_SECRET_"

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding
// default value is used.
//
// This function does not validate the configuration - call Validate() on
// the returned Config to ensure all required values are properly set.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		TLSCert:  getEnv("TLS_CERT_FILE", ""),
		TLSKey:   getEnv("TLS_KEY_FILE", ""),

		SignatureHeader: getEnv("WEBHOOK_SIGNATURE_HEADER", "x-ik-signature"),
		DefaultSecret:   getEnv("WEBHOOK_SECRET", ""),
		SourceSecrets:   loadSourceSecrets(),
		Tolerance:       getDurationEnv("WEBHOOK_TOLERANCE", 5*time.Minute),
	}
}

// SecretFor resolves the shared secret for a webhook source. A per-source
// secret takes precedence over the default secret. The second return value
// is false when no secret is configured for the source.
func (c *Config) SecretFor(source string) (string, bool) {
	if secret, ok := c.SourceSecrets[strings.ToLower(source)]; ok {
		return secret, true
	}
	if c.DefaultSecret != "" {
		return c.DefaultSecret, true
	}
	return "", false
}

// Validate performs validation on the configuration to ensure all required
// fields are present and all values are valid.
//
// The service should call this method after loading configuration and
// before starting to ensure safe operation.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q: must be a number between 1 and 65535", c.Port)
	}

	if c.DefaultSecret == "" && len(c.SourceSecrets) == 0 {
		return fmt.Errorf("no webhook secret configured: set WEBHOOK_SECRET or at least one WEBHOOK_SECRET_<SOURCE>")
	}

	if c.SignatureHeader == "" {
		return fmt.Errorf("WEBHOOK_SIGNATURE_HEADER must not be empty")
	}

	if c.Tolerance < 0 {
		return fmt.Errorf("WEBHOOK_TOLERANCE must not be negative")
	}

	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	return nil
}

// loadSourceSecrets collects all WEBHOOK_SECRET_<SOURCE> variables from the
// environment, keyed by lowercase source name.
func loadSourceSecrets() map[string]string {
	secrets := make(map[string]string)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, secretEnvPrefix) || value == "" {
			continue
		}
		source := strings.ToLower(strings.TrimPrefix(name, secretEnvPrefix))
		if source != "" {
			secrets[source] = value
		}
	}
	return secrets
}

// getEnv retrieves an environment variable value or returns a default
// value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable value or
// returns a default value. A bare "0" disables the associated feature.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if value == "0" {
		return 0
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	return defaultValue
}
