package configs

import (
	"os"
	"testing"
)

// setupTestEnv sets the variables every test expects to override config.yaml
func setupTestEnv() {
	os.Setenv("APP_DEBUG", "false")
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_PORT", "8080")
	os.Setenv("STORAGE_DRIVER", "memory")
	os.Setenv("LLM_PROVIDER", "compatible")
	os.Setenv("LLM_BASE_URL", "http://localhost:1234")
	os.Setenv("LLM_MODEL", "test-model")
	os.Setenv("LLM_TIMEOUT", "30")
	// Zero values are passed through; the composition root applies defaults
	os.Setenv("CACHE_TTL_MINUTES", "0")
	os.Setenv("SANDBOX_TIMEOUT_MS", "0")
}

// cleanupTestEnv cleans up environment variables after tests
func cleanupTestEnv() {
	for _, key := range []string{
		"APP_DEBUG", "APP_ENV", "APP_PORT", "STORAGE_DRIVER",
		"LLM_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "LLM_TIMEOUT",
		"CACHE_TTL_MINUTES", "SANDBOX_TIMEOUT_MS",
	} {
		os.Unsetenv(key)
	}
}

// TestEnvironmentOverridesConfigFile tests that env vars replace config.yaml values
func TestEnvironmentOverridesConfigFile(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.App.Port != "8080" {
		t.Errorf("Expected App.Port to be 8080, got %s", cfg.App.Port)
	}
	if cfg.LLM.Model != "test-model" {
		t.Errorf("Expected LLM.Model to be test-model, got %s", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 30 {
		t.Errorf("Expected LLM.Timeout to be 30, got %d", cfg.LLM.Timeout)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Expected Storage.Driver to be memory, got %s", cfg.Storage.Driver)
	}
}

// TestZeroValuesArePassedThrough tests that the config layer does not invent defaults
func TestZeroValuesArePassedThrough(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Cache.TTLMinutes != 0 {
		t.Errorf("Expected Cache.TTLMinutes to be 0, got %d", cfg.Cache.TTLMinutes)
	}
	if cfg.Sandbox.TimeoutMs != 0 {
		t.Errorf("Expected Sandbox.TimeoutMs to be 0, got %d", cfg.Sandbox.TimeoutMs)
	}
}

// TestFileValuesWithoutOverride tests values that only come from config.yaml
func TestFileValuesWithoutOverride(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Sandbox.MaxCallStack != 2048 {
		t.Errorf("Expected Sandbox.MaxCallStack to be 2048, got %d", cfg.Sandbox.MaxCallStack)
	}
	if cfg.Postgres.MaxOpenConns != 20 {
		t.Errorf("Expected Postgres.MaxOpenConns to be 20, got %d", cfg.Postgres.MaxOpenConns)
	}
}
