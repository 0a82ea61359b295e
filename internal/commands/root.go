// Package commands provides the CLI commands for ollamachat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
	"github.com/Rithvik-katakamm/llama-utils/internal/logger"
	"github.com/Rithvik-katakamm/llama-utils/internal/ui"
)

var (
	// Global flags
	modelFlag   string
	projectFlag string
	visualFlag  string
	baseURLFlag string
	verboseFlag bool

	// Root-only flags
	sessionFlag string
	rawFlag     bool
	outputFlag  string
	fileFlag    string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ollamachat [prompt]",
	Short: "Chat with local Ollama models",
	Long: `ollamachat is a session-aware chat client for a local Ollama server.
Conversations are stored as JSON files grouped by project, so every chat
can be resumed, searched and exported later.

Examples:
  ollamachat                            Pick a session and start chatting
  ollamachat "What is Go?"              Send a single query
  ollamachat -f prompt.md               Read prompt from file
  cat prompt.md | ollamachat            Read prompt from stdin
  ollamachat "Hi" --session @last       Append a query to the last session
  ollamachat sessions list              List saved sessions
  ollamachat -p work chat --new         New session in the work project`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("ollamachat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if len(args) > 0 {
			return runQuery(args[0], rawFlag)
		}

		// No input: interactive selector + chat loop
		return runInteractive(chatOptions{})
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., llama3.2)")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project the sessions belong to")
	rootCmd.PersistentFlags().StringVar(&visualFlag, "visual", "", "Visual mode (auto, rich, plain, silent)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Ollama server URL (e.g., http://localhost:11434)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&sessionFlag, "session", "", "Append the query to a saved session (@last, index or name)")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(promptsCmd)
}

// effectiveConfig loads the configuration and layers the global flags on
// top. Precedence is flag > environment > file > default.
func effectiveConfig() config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("using default configuration", "error", err)
	}

	if modelFlag != "" {
		cfg.DefaultModel = modelFlag
	}
	if projectFlag != "" {
		cfg.DefaultProject = projectFlag
	}
	if visualFlag != "" {
		if config.IsValidVisualMode(visualFlag) {
			cfg.VisualMode = visualFlag
		} else {
			logger.Warn("ignoring invalid visual mode", "mode", visualFlag)
		}
	}
	if baseURLFlag != "" {
		cfg.BaseURL = config.NormalizeBaseURL(baseURLFlag)
	}
	if verboseFlag {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		_ = logger.Configure("debug", os.Getenv("OLLAMACHAT_LOG_FILE"))
	}
	return cfg
}

// getModel returns the model to use (from flag, env or config).
func getModel() string {
	return effectiveConfig().DefaultModel
}

// getProject returns the active project name.
func getProject() string {
	return effectiveConfig().DefaultProject
}
