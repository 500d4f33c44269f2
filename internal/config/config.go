// Package config loads all application configuration once, at startup,
// into typed values. Mode selection (live vs. mocked, per service) is
// resolved here and nowhere else; the rest of the codebase only ever sees
// the resolved enums.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// ServiceMode is the resolved binding decision for one logical service.
type ServiceMode string

const (
	// ModeLive binds the real external backend
	ModeLive ServiceMode = "live"

	// ModeMocked binds the in-memory double
	ModeMocked ServiceMode = "mocked"
)

// Mocked reports whether the mode selects the in-memory double.
func (m ServiceMode) Mocked() bool {
	return m == ModeMocked
}

// TestMode selects the broader test execution behavior.
type TestMode string

const (
	// TestModeMock runs everything against doubles (the default)
	TestModeMock TestMode = "mock"

	// TestModeReal runs against live services, subject to call caps and
	// resource isolation
	TestModeReal TestMode = "real"

	// TestModeCapture runs against live services while recording every
	// generation interaction for later analysis
	TestModeCapture TestMode = "capture"
)

// StoreBackend selects the live persistence implementation.
type StoreBackend string

const (
	// BackendFirestore stores campaigns in Firestore
	BackendFirestore StoreBackend = "firestore"

	// BackendRedis stores campaigns in Redis
	BackendRedis StoreBackend = "redis"
)

// Environment variable names forming the mode-selection contract.
const (
	EnvUseMockFirebase = "USE_MOCK_FIREBASE"
	EnvUseMockGemini   = "USE_MOCK_GEMINI"
	EnvUseMocks        = "USE_MOCKS" // legacy combined flag
	EnvTestMode        = "TEST_MODE"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Live persistence settings
	StoreBackend       StoreBackend `envconfig:"STORE_BACKEND" default:"firestore"`
	FirestoreProjectID string       `envconfig:"FIRESTORE_PROJECT_ID"`
	RedisURL           string       `envconfig:"REDIS_URL"`

	// Live generation settings
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	// Real/capture test-mode settings
	RealCallLimit int    `envconfig:"REAL_CALL_LIMIT" default:"3"`
	CaptureDir    string `envconfig:"CAPTURE_DIR" default:"captures"`

	// Resolved mode decisions. These are not read from single variables;
	// see ResolveModes for the precedence rules.
	Persistence ServiceMode
	Generation  ServiceMode
	TestMode    TestMode
}

// Load reads configuration from the environment and resolves the mode
// decisions. It validates that every selected live path has the settings
// it needs, so misconfiguration fails at startup rather than on the first
// request.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Persistence, cfg.Generation = ResolveModes(os.LookupEnv)

	testMode, err := resolveTestMode(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.TestMode = testMode

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFirestore, BackendRedis:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (expected firestore or redis)", c.StoreBackend)
	}

	if c.Persistence == ModeLive {
		if c.StoreBackend == BackendFirestore && c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when persistence is live")
		}
		if c.StoreBackend == BackendRedis && c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when persistence is live with the redis backend")
		}
	}

	if c.Generation == ModeLive && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when generation is live")
	}

	if c.RealCallLimit < 1 {
		return fmt.Errorf("REAL_CALL_LIMIT must be at least 1, got %d", c.RealCallLimit)
	}

	return nil
}

// LookupFunc matches os.LookupEnv, injected for tests.
type LookupFunc func(key string) (string, bool)

// ResolveModes decides, independently per service, whether to bind the
// live backend or the in-memory double.
//
// Precedence: a per-service flag that is PRESENT in the environment always
// wins, whatever its value. Only when a per-service flag is absent does
// the legacy USE_MOCKS flag apply, and it applies to both services. With
// nothing set, both services are live.
//
// Malformed boolean values parse as false, which fails toward the live
// path; mocking is always an explicit opt-in.
func ResolveModes(lookup LookupFunc) (persistence, generation ServiceMode) {
	legacy := false
	if raw, ok := lookup(EnvUseMocks); ok {
		legacy = parseBool(raw)
	}

	persistence = resolveServiceMode(lookup, EnvUseMockFirebase, legacy)
	generation = resolveServiceMode(lookup, EnvUseMockGemini, legacy)
	return persistence, generation
}

func resolveServiceMode(lookup LookupFunc, key string, legacy bool) ServiceMode {
	if raw, ok := lookup(key); ok {
		if parseBool(raw) {
			return ModeMocked
		}
		return ModeLive
	}
	if legacy {
		return ModeMocked
	}
	return ModeLive
}

func resolveTestMode(lookup LookupFunc) (TestMode, error) {
	raw, ok := lookup(EnvTestMode)
	if !ok || raw == "" {
		return TestModeMock, nil
	}

	switch TestMode(raw) {
	case TestModeMock, TestModeReal, TestModeCapture:
		return TestMode(raw), nil
	default:
		return "", fmt.Errorf("unknown TEST_MODE %q (expected mock, real, or capture)", raw)
	}
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}
