// Package config handles configuration and prompt preset management for
// ollamachat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Visual modes accepted by the renderer layer.
const (
	VisualAuto   = "auto"
	VisualRich   = "rich"
	VisualPlain  = "plain"
	VisualSilent = "silent"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	// DefaultModel is the Ollama model tag used when no flag overrides it.
	DefaultModel string `json:"default_model"`
	// BaseURL is the OpenAI-compatible endpoint of the local Ollama server.
	BaseURL string `json:"base_url"`
	// ConversationsDir is where session files live; relative paths are
	// resolved against the working directory, matching the stock layout.
	ConversationsDir string `json:"conversations_dir"`
	// DefaultProject names the subdirectory used when no project is given.
	DefaultProject string `json:"default_project"`
	// VisualMode selects the output renderer: auto, rich, plain or silent.
	VisualMode string `json:"visual_mode"`
	// CopyToClipboard copies one-shot query responses to the clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// Verbose enables debug logging.
	Verbose  bool           `json:"verbose"`
	Markdown MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		DefaultModel:     "deepseek-r1:7b",
		BaseURL:          "http://localhost:11434/v1",
		ConversationsDir: "conversations",
		DefaultProject:   "default",
		VisualMode:       VisualAuto,
		CopyToClipboard:  false,
		Verbose:          false,
		Markdown:         DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".ollamachat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetPromptsPath returns the path to the prompt presets file
func GetPromptsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "prompts.json"), nil
}

// GetHistoryPath returns the path to the REPL input history file
func GetHistoryPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "repl_history"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A .env file in the working directory is honored first.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = DefaultConfig()
		applyEnv(&cfg)
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv layers environment variables over the loaded configuration.
func applyEnv(cfg *Config) {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.BaseURL = NormalizeBaseURL(host)
	}
	if model := os.Getenv("OLLAMACHAT_MODEL"); model != "" {
		cfg.DefaultModel = model
	}
	if project := os.Getenv("OLLAMACHAT_PROJECT"); project != "" {
		cfg.DefaultProject = project
	}
	if visual := os.Getenv("OLLAMACHAT_VISUAL"); visual != "" && IsValidVisualMode(visual) {
		cfg.VisualMode = visual
	}
}

// NormalizeBaseURL turns an OLLAMA_HOST style value (host:port, with or
// without scheme) into a full OpenAI-compatible base URL ending in /v1.
func NormalizeBaseURL(raw string) string {
	url := strings.TrimRight(strings.TrimSpace(raw), "/")
	if url == "" {
		return DefaultConfig().BaseURL
	}
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	if !strings.HasSuffix(url, "/v1") {
		url += "/v1"
	}
	return url
}

// IsValidVisualMode reports whether mode is one of auto, rich, plain, silent.
func IsValidVisualMode(mode string) bool {
	switch mode {
	case VisualAuto, VisualRich, VisualPlain, VisualSilent:
		return true
	}
	return false
}

// VisualModes returns the accepted visual mode names.
func VisualModes() []string {
	return []string{VisualAuto, VisualRich, VisualPlain, VisualSilent}
}
