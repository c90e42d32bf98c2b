// Package config handles Hearth configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration
type Config struct {
	// Paths
	DataDir string `json:"data_dir"`

	// Discord
	Discord DiscordConfig `json:"discord"`

	// Claude API for assist features
	Claude ClaudeConfig `json:"claude"`

	// Reminder scheduling
	Reminders ReminderConfig `json:"reminders"`

	// Ops HTTP server
	Ops OpsConfig `json:"ops"`
}

// DiscordConfig for the bot session
type DiscordConfig struct {
	Token   string `json:"token"`    // Usually supplied via DISCORD_BOT_TOKEN
	GuildID string `json:"guild_id"` // Optional: register commands per-guild for instant sync
}

// ClaudeConfig for the Claude API
type ClaudeConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// PastDuePolicy controls what happens when a reminder's computed due
// time is already in the past at creation.
type PastDuePolicy string

const (
	// PastDueFire creates the row anyway; it fires on the next tick.
	PastDueFire PastDuePolicy = "fire"
	// PastDueSkip discards the reminder entirely.
	PastDueSkip PastDuePolicy = "skip"
)

// ReminderConfig for the reminder scheduler
type ReminderConfig struct {
	TickInterval    Duration      `json:"tick_interval"`     // Due-reminder scan cadence
	CookingLeadHour int           `json:"cooking_lead_hour"` // Local hour for next-day cooking reminders
	PregenAt        string        `json:"pregen_at"`         // Daily pre-generation time, HH:MM
	PastDue         PastDuePolicy `json:"past_due"`
	Timezone        string        `json:"timezone"`
}

// OpsConfig for the local ops HTTP server
type OpsConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// Duration wraps time.Duration so config files can say "5m".
type Duration time.Duration

// MarshalJSON renders the duration as a string like "5m0s".
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts either a duration string or nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Default returns default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DataDir: filepath.Join(home, ".hearth"),
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_BOT_TOKEN"),
			GuildID: os.Getenv("DISCORD_GUILD_ID"),
		},
		Claude: ClaudeConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  "claude-sonnet-4-20250514",
		},
		Reminders: ReminderConfig{
			TickInterval:    Duration(5 * time.Minute),
			CookingLeadHour: 8,
			PregenAt:        "00:00",
			PastDue:         PastDueFire,
			Timezone:        "Local",
		},
		Ops: OpsConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    8390,
		},
	}
}

// Load loads config from file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Secrets from env always win over the file
	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		cfg.Discord.Token = token
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.Claude.APIKey = apiKey
	}

	return cfg, nil
}

// Save saves config to file
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(c.DataDir, "config.json")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	// Don't save secrets to file
	safeCfg := *c
	safeCfg.Discord.Token = ""
	safeCfg.Claude.APIKey = ""

	data, err := json.MarshalIndent(safeCfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
