package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      DefaultBaseURL,
			DefaultQuery: "React",
			HTTPTimeout:  5 * time.Second,
			UserAgent:    "hnews-test/1.0",
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
		Log: LogConfig{
			Level: "off",
		},
	}
}
