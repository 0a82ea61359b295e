package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage prompt presets",
	Long:  `View and manage reusable system prompts for chat sessions.`,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	RunE:  runPromptsList,
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show preset details",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsShow,
}

var promptsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsAdd,
}

var promptsRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"delete"},
	Short:   "Remove a preset",
	Args:    cobra.ExactArgs(1),
	RunE:    runPromptsRemove,
}

var promptsDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsDefault,
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)
	promptsCmd.AddCommand(promptsAddCmd)
	promptsCmd.AddCommand(promptsRemoveCmd)
	promptsCmd.AddCommand(promptsDefaultCmd)
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	defaultName := cfg.DefaultPreset
	if defaultName == "" {
		defaultName = "default"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION\tDEFAULT")
	_, _ = fmt.Fprintln(w, "----\t-----------\t-------")

	for _, p := range cfg.Presets {
		isDefault := ""
		if p.Name == defaultName {
			isDefault = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Description, isDefault)
	}

	return w.Flush()
}

func runPromptsShow(cmd *cobra.Command, args []string) error {
	preset, err := config.GetPreset(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Name: %s\n", preset.Name)
	fmt.Printf("Description: %s\n", preset.Description)
	if preset.Model != "" {
		fmt.Printf("Preferred Model: %s\n", preset.Model)
	}
	fmt.Printf("\nSystem Prompt:\n%s\n", preset.System)

	return nil
}

func runPromptsAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	if _, err := config.GetPreset(name); err == nil {
		return fmt.Errorf("preset '%s' already exists", name)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter description: ")
	desc, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	desc = strings.TrimSpace(desc)

	fmt.Println("Enter system prompt (end with an empty line):")
	var promptLines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimRight(line, "\n\r")
		if line == "" {
			break
		}
		promptLines = append(promptLines, line)
	}

	preset := config.Preset{
		Name:        name,
		Description: desc,
		System:      strings.Join(promptLines, "\n"),
	}

	if err := config.AddPreset(preset); err != nil {
		return err
	}

	fmt.Printf("Preset '%s' created.\n", name)
	return nil
}

func runPromptsRemove(cmd *cobra.Command, args []string) error {
	if err := config.DeletePreset(args[0]); err != nil {
		return err
	}

	fmt.Printf("Preset '%s' removed.\n", args[0])
	return nil
}

func runPromptsDefault(cmd *cobra.Command, args []string) error {
	if err := config.SetDefaultPreset(args[0]); err != nil {
		return err
	}

	fmt.Printf("Default preset set to '%s'.\n", args[0])
	return nil
}
