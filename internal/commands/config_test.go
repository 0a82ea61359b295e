package commands

import (
	"strings"
	"testing"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
)

func TestConfigCommand(t *testing.T) {
	if configCmd.Use != "config" {
		t.Errorf("Expected use 'config', got %s", configCmd.Use)
	}

	expected := []string{"show", "set", "path", "reset"}
	for _, name := range expected {
		found := false
		for _, sub := range configCmd.Commands() {
			if strings.HasPrefix(sub.Use, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand %s to be registered", name)
		}
	}
}

func TestRunConfigShow(t *testing.T) {
	setupTestHome(t)

	output := captureStdout(t, func() error {
		return runConfigShow(configShowCmd, nil)
	})

	for _, want := range []string{"default_model", "deepseek-r1:7b", "visual_mode", "plain", "Config file:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Config show missing %q: %s", want, output)
		}
	}
}

func TestRunConfigSet(t *testing.T) {
	setupTestHome(t)

	output := captureStdout(t, func() error {
		return runConfigSet(configSetCmd, []string{"default_model", "mistral"})
	})

	if !strings.Contains(output, "Set default_model to mistral") {
		t.Errorf("Expected confirmation, got: %s", output)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DefaultModel != "mistral" {
		t.Errorf("Expected default model mistral, got %s", cfg.DefaultModel)
	}
}

func TestRunConfigSet_ModelAlias(t *testing.T) {
	setupTestHome(t)

	_ = captureStdout(t, func() error {
		return runConfigSet(configSetCmd, []string{"model", "llama3.2"})
	})

	cfg, _ := config.LoadConfig()
	if cfg.DefaultModel != "llama3.2" {
		t.Errorf("Expected 'model' alias to set default_model, got %s", cfg.DefaultModel)
	}
}

func TestRunConfigSet_BaseURLNormalized(t *testing.T) {
	setupTestHome(t)

	_ = captureStdout(t, func() error {
		return runConfigSet(configSetCmd, []string{"base_url", "remotehost:11434"})
	})

	cfg, _ := config.LoadConfig()
	if cfg.BaseURL != "http://remotehost:11434/v1" {
		t.Errorf("Expected normalized base URL, got %s", cfg.BaseURL)
	}
}

func TestRunConfigSet_Booleans(t *testing.T) {
	setupTestHome(t)

	_ = captureStdout(t, func() error {
		return runConfigSet(configSetCmd, []string{"copy_to_clipboard", "true"})
	})

	cfg, _ := config.LoadConfig()
	if !cfg.CopyToClipboard {
		t.Error("Expected copy_to_clipboard true")
	}

	err := runConfigSet(configSetCmd, []string{"verbose", "maybe"})
	if err == nil || !strings.Contains(err.Error(), "invalid boolean value") {
		t.Errorf("Expected boolean parse error, got %v", err)
	}
}

func TestRunConfigSet_InvalidVisualMode(t *testing.T) {
	setupTestHome(t)

	err := runConfigSet(configSetCmd, []string{"visual_mode", "fancy"})
	if err == nil || !strings.Contains(err.Error(), "invalid visual mode") {
		t.Errorf("Expected visual mode error, got %v", err)
	}
}

func TestRunConfigSet_UnknownKey(t *testing.T) {
	setupTestHome(t)

	err := runConfigSet(configSetCmd, []string{"frobnicate", "1"})
	if err == nil || !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("Expected unknown key error, got %v", err)
	}
}

func TestRunConfigPath(t *testing.T) {
	setupTestHome(t)

	output := captureStdout(t, func() error {
		return runConfigPath(configPathCmd, nil)
	})

	if !strings.Contains(output, "config.json") {
		t.Errorf("Expected config path, got: %s", output)
	}
}

func TestRunConfigReset(t *testing.T) {
	setupTestHome(t)

	_ = captureStdout(t, func() error {
		return runConfigSet(configSetCmd, []string{"default_model", "mistral"})
	})
	output := captureStdout(t, func() error {
		return runConfigReset(configResetCmd, nil)
	})

	if !strings.Contains(output, "Configuration reset to defaults.") {
		t.Errorf("Expected reset confirmation, got: %s", output)
	}

	cfg, _ := config.LoadConfig()
	if cfg.DefaultModel != "deepseek-r1:7b" {
		t.Errorf("Expected default model after reset, got %s", cfg.DefaultModel)
	}
}
