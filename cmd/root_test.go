// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"
	"time"

	"github.com/markalston/academia-console/internal/config"
)

func TestConfig_Default(t *testing.T) {
	t.Setenv("ACADEMIA_API_URL", "")
	t.Setenv("ACADEMIA_DATA_DIR", t.TempDir())

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != config.DefaultAPIURL {
		t.Errorf("expected default URL %s, got %s", config.DefaultAPIURL, cfg.APIURL)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("expected default timeout, got %s", cfg.Timeout)
	}
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("ACADEMIA_API_URL", "backend.example.com/")
	t.Setenv("ACADEMIA_TIMEOUT", "5s")
	t.Setenv("ACADEMIA_DATA_DIR", t.TempDir())

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://backend.example.com" {
		t.Errorf("expected https://backend.example.com, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.Timeout)
	}
}

func TestConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("ACADEMIA_API_URL", "http://backend.example.com")
	t.Setenv("ACADEMIA_DATA_DIR", t.TempDir())

	flag := rootCmd.PersistentFlags().Lookup("api-url")
	if err := flag.Value.Set("http://flag-override.example.com"); err != nil {
		t.Fatal(err)
	}
	flag.Changed = true
	defer func() {
		_ = flag.Value.Set("")
		flag.Changed = false
	}()

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
}

func TestJSONOutput(t *testing.T) {
	withJSON(t)

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"login", "logout", "whoami", "list", "get", "delete", "stats", "payments", "grade", "enrollment", "validate", "browse"}
	for _, name := range want {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}
