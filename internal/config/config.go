// ABOUTME: Configuration loader for the luxe client
// ABOUTME: Loads settings from .env files and environment variables with defaults

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/luxefashion/luxe-cli/internal/store"
)

// DefaultAPIURL is the hosted storefront backend
const DefaultAPIURL = "https://luxe-fashion-backend.onrender.com/api"

type Config struct {
	// Backend
	APIURL      string
	HTTPTimeout time.Duration // 0 disables the client-side timeout

	// Local state
	ConfigDir string

	// Sign-in
	CallbackDelay  time.Duration // wait between saving a federated token and loading the profile
	CallbackListen string        // loopback address for the Google sign-in callback

	// Cart
	SerializeCart bool // serialize mutate-then-refresh per product

	// Payment
	PayPalCheckoutURL string
}

// LoadDotEnv loads .env files into the environment. Missing files are
// skipped and variables already set are never overridden.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	return LoadWithAPIURL("")
}

// LoadWithAPIURL is Load with apiURL, when set, taking precedence over
// LUXE_API_URL. Only the winning URL is validated.
func LoadWithAPIURL(apiURL string) (*Config, error) {
	if apiURL == "" {
		apiURL = getEnv("LUXE_API_URL", DefaultAPIURL)
	}
	cfg := &Config{
		APIURL:      strings.TrimRight(apiURL, "/"),
		HTTPTimeout: time.Duration(getEnvInt("LUXE_HTTP_TIMEOUT", 30)) * time.Second,

		ConfigDir: getEnv("LUXE_CONFIG_DIR", store.DefaultConfigDir()),

		CallbackDelay:  time.Duration(getEnvInt("LUXE_CALLBACK_DELAY_MS", 100)) * time.Millisecond,
		CallbackListen: getEnv("LUXE_CALLBACK_LISTEN", "127.0.0.1:8765"),

		SerializeCart: getEnvBool("LUXE_SERIALIZE_CART", false),

		PayPalCheckoutURL: getEnv("LUXE_PAYPAL_CHECKOUT_URL", "https://www.paypal.com/checkoutnow"),
	}

	if err := ValidateAPIURL(cfg.APIURL); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout < 0 {
		return nil, fmt.Errorf("LUXE_HTTP_TIMEOUT must not be negative, got %s", cfg.HTTPTimeout)
	}
	if cfg.CallbackDelay < 0 {
		return nil, fmt.Errorf("LUXE_CALLBACK_DELAY_MS must not be negative, got %s", cfg.CallbackDelay)
	}
	if cfg.ConfigDir == "" {
		return nil, fmt.Errorf("cannot determine config directory, set LUXE_CONFIG_DIR")
	}

	return cfg, nil
}

// ValidateAPIURL checks that raw is an absolute http(s) URL
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
