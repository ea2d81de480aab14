package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the Algolia-backed Hacker News search endpoint.
const DefaultBaseURL = "https://hn.algolia.com/api/v1/search"

// envKeyReplacer maps api.base_url to HNEWS_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	UI     UIConfig     `mapstructure:"ui"`
	Keys   KeyConfig    `mapstructure:"keys"`
	Log    LogConfig    `mapstructure:"log"`
	Opener OpenerConfig `mapstructure:"opener"`
}

type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	DefaultQuery string        `mapstructure:"default_query"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

type UIConfig struct {
	Colors      UIColors `mapstructure:"colors"`
	Placeholder string   `mapstructure:"placeholder"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit   string `mapstructure:"quit"`
	Reload string `mapstructure:"reload"`
	Open   string `mapstructure:"open"`
	Filter string `mapstructure:"filter"`
	Back   string `mapstructure:"back"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// OpenerConfig selects the program used to open links. An empty Command
// picks the first installed opener for the platform.
type OpenerConfig struct {
	Command string `mapstructure:"command"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:      DefaultBaseURL,
			DefaultQuery: "React",
			HTTPTimeout:  30 * time.Second,
			UserAgent:    "hnews/1.0 (https://github.com/pders01/hnews)",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6600",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
			Placeholder: "Search for news...",
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:   "q",
				Reload: "r",
				Open:   "o",
				Filter: "/",
				Back:   "esc",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".hnews", "hnews.log"),
		},
	}
}

// setDefaults registers every leaf key so partial sections in a config file
// only override what they name.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.default_query", cfg.API.DefaultQuery)
	v.SetDefault("api.http_timeout", cfg.API.HTTPTimeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("ui.placeholder", cfg.UI.Placeholder)
	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.colors.success", cfg.UI.Colors.Success)

	v.SetDefault("keys.modifier", cfg.Keys.Modifier)
	v.SetDefault("keys.bindings.quit", cfg.Keys.Bindings.Quit)
	v.SetDefault("keys.bindings.reload", cfg.Keys.Bindings.Reload)
	v.SetDefault("keys.bindings.open", cfg.Keys.Bindings.Open)
	v.SetDefault("keys.bindings.filter", cfg.Keys.Bindings.Filter)
	v.SetDefault("keys.bindings.back", cfg.Keys.Bindings.Back)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)

	v.SetDefault("opener.command", cfg.Opener.Command)
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "hnews")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HNEWS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.Log.Path = expandPath(config.Log.Path)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings keep the TOML readable
	apiCfg := map[string]interface{}{
		"base_url":      config.API.BaseURL,
		"default_query": config.API.DefaultQuery,
		"http_timeout":  config.API.HTTPTimeout.String(),
		"user_agent":    config.API.UserAgent,
	}

	uiCfg := map[string]interface{}{
		"placeholder": config.UI.Placeholder,
		"colors": map[string]interface{}{
			"primary":   config.UI.Colors.Primary,
			"secondary": config.UI.Colors.Secondary,
			"accent":    config.UI.Colors.Accent,
			"text":      config.UI.Colors.Text,
			"muted":     config.UI.Colors.Muted,
			"error":     config.UI.Colors.Error,
			"success":   config.UI.Colors.Success,
		},
	}

	keysCfg := map[string]interface{}{
		"modifier": config.Keys.Modifier,
		"bindings": map[string]interface{}{
			"quit":   config.Keys.Bindings.Quit,
			"reload": config.Keys.Bindings.Reload,
			"open":   config.Keys.Bindings.Open,
			"filter": config.Keys.Bindings.Filter,
			"back":   config.Keys.Bindings.Back,
		},
	}

	v.Set("api", apiCfg)
	v.Set("ui", uiCfg)
	v.Set("keys", keysCfg)
	v.Set("log", map[string]interface{}{"level": config.Log.Level, "path": config.Log.Path})
	v.Set("opener", map[string]interface{}{"command": config.Opener.Command})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// DefaultPath is where Load looks first when no path is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hnews", "config.toml")
}
