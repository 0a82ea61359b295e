package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Preset represents a reusable system prompt configuration
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	System      string `json:"system"`
	Model       string `json:"model,omitempty"` // Preferred model (optional)
}

// PresetConfig stores all prompt presets
type PresetConfig struct {
	Presets       []Preset `json:"presets"`
	DefaultPreset string   `json:"default_preset,omitempty"`
}

// DefaultPresets returns pre-configured prompt presets
func DefaultPresets() []Preset {
	return []Preset{
		{
			Name:        "default",
			Description: "No system prompt",
			System:      "",
		},
		{
			Name:        "coder",
			Description: "Concise programming assistant",
			System: `You are an expert programmer. When answering:
- Prefer working code over prose
- Use fenced code blocks with the language tag
- Point out bugs and edge cases directly
- Keep explanations short and concrete`,
		},
		{
			Name:        "writer",
			Description: "Creative writing assistant",
			System: `You are a creative writing assistant. Your goal is to:
- Help with creative writing, storytelling, and content creation
- Provide suggestions that enhance narrative flow
- Maintain consistent tone and style
- Offer multiple alternatives when asked`,
		},
		{
			Name:        "reviewer",
			Description: "Code review assistant",
			System: `You are a careful code reviewer. For each snippet:
- Identify correctness issues first, style second
- Suggest the minimal change that fixes each issue
- Note missing error handling and untested paths
- Be direct; skip praise`,
		},
	}
}

// LoadPresets loads the prompt preset configuration
func LoadPresets() (*PresetConfig, error) {
	path, err := GetPromptsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if file doesn't exist
			return &PresetConfig{
				Presets:       DefaultPresets(),
				DefaultPreset: "default",
			}, nil
		}
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}

	var cfg PresetConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}

	// Merge with defaults (keep user customizations)
	cfg.Presets = mergePresets(DefaultPresets(), cfg.Presets)

	return &cfg, nil
}

// SavePresets saves the prompt preset configuration
func SavePresets(cfg *PresetConfig) error {
	path, err := GetPromptsPath()
	if err != nil {
		return err
	}

	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prompts: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// GetPreset returns a preset by name
func GetPreset(name string) (*Preset, error) {
	cfg, err := LoadPresets()
	if err != nil {
		return nil, err
	}

	for _, p := range cfg.Presets {
		if p.Name == name {
			return &p, nil
		}
	}

	return nil, fmt.Errorf("prompt preset '%s' not found", name)
}

// ListPresetNames returns the names of all presets
func ListPresetNames() ([]string, error) {
	cfg, err := LoadPresets()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(cfg.Presets))
	for i, p := range cfg.Presets {
		names[i] = p.Name
	}
	return names, nil
}

// AddPreset adds a new preset
func AddPreset(preset Preset) error {
	if err := ValidatePreset(preset); err != nil {
		return err
	}

	cfg, err := LoadPresets()
	if err != nil {
		return err
	}

	for _, p := range cfg.Presets {
		if p.Name == preset.Name {
			return fmt.Errorf("prompt preset '%s' already exists", preset.Name)
		}
	}

	cfg.Presets = append(cfg.Presets, preset)
	return SavePresets(cfg)
}

// DeletePreset removes a preset by name
func DeletePreset(name string) error {
	if name == "default" {
		return fmt.Errorf("cannot delete the default preset")
	}

	cfg, err := LoadPresets()
	if err != nil {
		return err
	}

	kept := make([]Preset, 0, len(cfg.Presets))
	found := false
	for _, p := range cfg.Presets {
		if p.Name == name {
			found = true
			continue
		}
		kept = append(kept, p)
	}

	if !found {
		return fmt.Errorf("prompt preset '%s' not found", name)
	}

	cfg.Presets = kept

	// Reset default if deleted
	if cfg.DefaultPreset == name {
		cfg.DefaultPreset = "default"
	}

	return SavePresets(cfg)
}

// SetDefaultPreset sets the default preset
func SetDefaultPreset(name string) error {
	if _, err := GetPreset(name); err != nil {
		return err
	}

	cfg, err := LoadPresets()
	if err != nil {
		return err
	}

	cfg.DefaultPreset = name
	return SavePresets(cfg)
}

// GetDefaultPreset returns the default preset
func GetDefaultPreset() (*Preset, error) {
	cfg, err := LoadPresets()
	if err != nil {
		return nil, err
	}

	name := cfg.DefaultPreset
	if name == "" {
		name = "default"
	}

	return GetPreset(name)
}

func mergePresets(defaults, custom []Preset) []Preset {
	result := make([]Preset, len(defaults))
	copy(result, defaults)

	// Add or replace with custom
	for _, cp := range custom {
		found := false
		for i, dp := range result {
			if dp.Name == cp.Name {
				result[i] = cp
				found = true
				break
			}
		}
		if !found {
			result = append(result, cp)
		}
	}

	return result
}

// Validation constants
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
	MaxPromptLength      = 32 * 1024 // 32KB
)

// ValidatePreset validates a preset's fields
func ValidatePreset(p Preset) error {
	fieldErrors := make(map[string]string)

	if p.Name == "" {
		fieldErrors["name"] = "name is required"
	} else if len(p.Name) > MaxNameLength {
		fieldErrors["name"] = fmt.Sprintf("name too long (max %d characters)", MaxNameLength)
	} else if !isValidPresetName(p.Name) {
		fieldErrors["name"] = "name must contain only alphanumeric characters, underscores, and hyphens"
	}

	if len(p.Description) > MaxDescriptionLength {
		fieldErrors["description"] = fmt.Sprintf("description too long (max %d characters)", MaxDescriptionLength)
	}

	if len(p.System) > MaxPromptLength {
		fieldErrors["system"] = fmt.Sprintf("system prompt too long (max %d characters)", MaxPromptLength)
	}

	if len(fieldErrors) > 0 {
		return fmt.Errorf("validation failed: %v", fieldErrors)
	}

	return nil
}

func isValidPresetName(name string) bool {
	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
			return false
		}
	}
	return true
}
