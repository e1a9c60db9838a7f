// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"strings"
	"testing"
)

// withCleanEnv unsets every ACADEMIA_* variable and sets extra for the
// duration of the test. t.Setenv restores the previous values.
func withCleanEnv(t *testing.T, extra map[string]string) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	for key, value := range extra {
		t.Setenv(key, value)
	}
}
