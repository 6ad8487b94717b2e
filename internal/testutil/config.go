package testutil

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// Test environment variables
	TestDatabaseURL = "TEST_DATABASE_URL"
	TestSnapshotDir = "TEST_SNAPSHOT_DIR"

	// Default test values when environment variables are not set
	DefaultTestSnapshotDir = "testdata/sweeps"
)

// LoadEnv loads a .env file if present; missing files are fine in CI.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetEnv returns an environment value or the default.
func GetEnv(envVar, defaultValue string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return defaultValue
}

// GetTestDatabaseURL returns the integration test database URL, empty when
// no database is configured (tests should skip then).
func GetTestDatabaseURL() string {
	return os.Getenv(TestDatabaseURL)
}

// GetTestSnapshotDir returns the snapshot directory for sweep tests.
func GetTestSnapshotDir() string {
	return GetEnv(TestSnapshotDir, DefaultTestSnapshotDir)
}

// IsTestMode returns true if we're running in test mode.
func IsTestMode() bool {
	testMode := os.Getenv("TEST_MODE")
	if testMode == "" {
		return true // Default to test mode if not specified
	}

	enabled, _ := strconv.ParseBool(testMode)
	return enabled
}
