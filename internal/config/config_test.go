package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %s, want %s", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.DefaultQuery != "React" {
		t.Errorf("API.DefaultQuery = %s, want 'React'", cfg.API.DefaultQuery)
	}
	if cfg.API.HTTPTimeout != 30*time.Second {
		t.Errorf("API.HTTPTimeout = %v, want 30s", cfg.API.HTTPTimeout)
	}
	if cfg.API.UserAgent == "" {
		t.Error("API.UserAgent should not be empty")
	}

	if cfg.UI.Placeholder == "" {
		t.Error("UI.Placeholder should not be empty")
	}

	if cfg.Log.Level != "off" {
		t.Errorf("Log.Level = %s, want 'off'", cfg.Log.Level)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.Keys.Bindings.Reload != "r" {
		t.Errorf("Keys.Bindings.Reload = %s, want 'r'", cfg.Keys.Bindings.Reload)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.API.DefaultQuery != "React" {
		t.Errorf("API.DefaultQuery = %v, want React", cfg.API.DefaultQuery)
	}
	if cfg.API.HTTPTimeout != 30*time.Second {
		t.Errorf("API.HTTPTimeout = %v, want 30s", cfg.API.HTTPTimeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[api]
default_query = "golang"
http_timeout = "10s"
user_agent = "test-agent"

[ui.colors]
primary = "#FF0000"

[log]
level = "debug"
path = "/tmp/hnews-test.log"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.DefaultQuery != "golang" {
		t.Errorf("API.DefaultQuery = %s, want 'golang'", cfg.API.DefaultQuery)
	}
	if cfg.API.HTTPTimeout != 10*time.Second {
		t.Errorf("API.HTTPTimeout = %v, want 10s", cfg.API.HTTPTimeout)
	}
	if cfg.API.UserAgent != "test-agent" {
		t.Errorf("API.UserAgent = %s, want 'test-agent'", cfg.API.UserAgent)
	}
	if cfg.UI.Colors.Primary != "#FF0000" {
		t.Errorf("UI.Colors.Primary = %s, want '#FF0000'", cfg.UI.Colors.Primary)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want 'debug'", cfg.Log.Level)
	}

	// Keys not named in the file keep their defaults
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %s, want default", cfg.API.BaseURL)
	}
	if cfg.UI.Colors.Muted != "#94A3B8" {
		t.Errorf("UI.Colors.Muted = %s, want default", cfg.UI.Colors.Muted)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HNEWS_API_DEFAULT_QUERY", "rust")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.DefaultQuery != "rust" {
		t.Errorf("API.DefaultQuery = %s, want 'rust'", cfg.API.DefaultQuery)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[api\nbase_url = "), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for malformed TOML")
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:9999/api/v1/search",
			DefaultQuery: "sqlite",
			HTTPTimeout:  45 * time.Second,
			UserAgent:    "test-save-agent",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary: "#00FF00",
			},
		},
		Keys: KeyConfig{
			Modifier: "alt",
			Bindings: KeyBindings{
				Quit: "x",
			},
		},
		Opener: OpenerConfig{Command: "firefox"},
	}

	savePath := filepath.Join(tmpDir, "nested", "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Save() did not create config file")
	}

	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("Loaded API.BaseURL = %s, want %s", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.API.HTTPTimeout != cfg.API.HTTPTimeout {
		t.Errorf("Loaded API.HTTPTimeout = %v, want %v", loaded.API.HTTPTimeout, cfg.API.HTTPTimeout)
	}
	if loaded.Keys.Modifier != cfg.Keys.Modifier {
		t.Errorf("Loaded Keys.Modifier = %s, want %s", loaded.Keys.Modifier, cfg.Keys.Modifier)
	}
	if loaded.Opener.Command != "firefox" {
		t.Errorf("Loaded Opener.Command = %s, want firefox", loaded.Opener.Command)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		t.Fatal("GenerateDefaultConfig() did not create file")
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Generated config has Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.API.DefaultQuery != "React" {
		t.Errorf("Generated config has API.DefaultQuery = %s, want 'React'", cfg.API.DefaultQuery)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %q, want empty", got)
	}
	if got := expandPath("~/logs/hnews.log"); got != filepath.Join(home, "logs", "hnews.log") {
		t.Errorf("expandPath(~/logs/hnews.log) = %q", got)
	}
	if got := expandPath("relative.log"); !filepath.IsAbs(got) {
		t.Errorf("expandPath(relative.log) = %q, want absolute", got)
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	if cfg == nil {
		t.Fatal("TestConfig() returned nil")
	}

	if cfg.API.UserAgent != "hnews-test/1.0" {
		t.Errorf("TestConfig API.UserAgent = %s, want 'hnews-test/1.0'", cfg.API.UserAgent)
	}
	if cfg.Log.Level != "off" {
		t.Errorf("TestConfig Log.Level = %s, want 'off'", cfg.Log.Level)
	}
}
