package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and change the settings stored in ~/.ollamachat/config.json.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Keys: default_model, base_url, conversations_dir, default_project,
visual_mode, copy_to_clipboard, verbose, markdown.style,
markdown.enable_emoji, markdown.preserve_newlines`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the configuration to defaults",
	RunE:  runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("%-26s %s\n", "default_model", cfg.DefaultModel)
	fmt.Printf("%-26s %s\n", "base_url", cfg.BaseURL)
	fmt.Printf("%-26s %s\n", "conversations_dir", cfg.ConversationsDir)
	fmt.Printf("%-26s %s\n", "default_project", cfg.DefaultProject)
	fmt.Printf("%-26s %s\n", "visual_mode", cfg.VisualMode)
	fmt.Printf("%-26s %t\n", "copy_to_clipboard", cfg.CopyToClipboard)
	fmt.Printf("%-26s %t\n", "verbose", cfg.Verbose)
	fmt.Printf("%-26s %s\n", "markdown.style", cfg.Markdown.Style)
	fmt.Printf("%-26s %t\n", "markdown.enable_emoji", cfg.Markdown.EnableEmoji)
	fmt.Printf("%-26s %t\n", "markdown.preserve_newlines", cfg.Markdown.PreserveNewLines)

	if path, err := config.GetConfigPath(); err == nil {
		fmt.Printf("\nConfig file: %s\n", path)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch strings.ToLower(key) {
	case "default_model", "model":
		cfg.DefaultModel = value
	case "base_url":
		cfg.BaseURL = config.NormalizeBaseURL(value)
	case "conversations_dir":
		cfg.ConversationsDir = value
	case "default_project", "project":
		cfg.DefaultProject = value
	case "visual_mode", "visual":
		if !config.IsValidVisualMode(value) {
			return fmt.Errorf("invalid visual mode '%s' (valid: %s)",
				value, strings.Join(config.VisualModes(), ", "))
		}
		cfg.VisualMode = value
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.CopyToClipboard = b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.Verbose = b
	case "markdown.style":
		cfg.Markdown.Style = value
	case "markdown.enable_emoji":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.Markdown.EnableEmoji = b
	case "markdown.preserve_newlines":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.Markdown.PreserveNewLines = b
	default:
		return fmt.Errorf("unknown configuration key '%s'", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s to %s\n", strings.ToLower(key), value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.SaveConfig(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}
