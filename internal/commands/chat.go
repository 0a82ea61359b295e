package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
	"github.com/Rithvik-katakamm/llama-utils/internal/session"
	"github.com/Rithvik-katakamm/llama-utils/internal/ui"
)

var (
	chatNewFlag     bool
	chatNameFlag    string
	chatSystemFlag  string
	chatSessionFlag string
	chatContextFlag []string
	chatPresetFlag  string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session against the local Ollama server.

Without flags a session selector is shown first. The chat keeps its full
message history and saves after every exchange. Type 'quit' or press
Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(chatOptions{
			newSession:   chatNewFlag,
			name:         chatNameFlag,
			systemPrompt: chatSystemFlag,
			sessionRef:   chatSessionFlag,
			contextFiles: chatContextFlag,
			preset:       chatPresetFlag,
		})
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatNewFlag, "new", false, "Start a new session without the selector")
	chatCmd.Flags().StringVar(&chatNameFlag, "name", "", "Name for the new session file")
	chatCmd.Flags().StringVar(&chatSystemFlag, "system", "", "System prompt for the new session")
	chatCmd.Flags().StringVar(&chatSessionFlag, "session", "", "Resume a saved session (@last, index or name)")
	chatCmd.Flags().StringArrayVar(&chatContextFlag, "context-file", nil, "File to inject as context (repeatable)")
	chatCmd.Flags().StringVar(&chatPresetFlag, "prompt", "", "Prompt preset to use as the system prompt")
}

// chatOptions carries the chat entry flags into the interactive flow.
type chatOptions struct {
	newSession   bool
	name         string
	systemPrompt string
	sessionRef   string
	contextFiles []string
	preset       string
}

// runInteractive drives the selector + chat outer loop. Explicit flags
// (--new, --session) skip the selector and run a single chat.
func runInteractive(opts chatOptions) error {
	cfg := effectiveConfig()
	renderer := ui.NewRenderer(cfg)
	client := deps.apiClient(cfg)

	store, err := session.NewStore(cfg.ConversationsDir, cfg.DefaultProject)
	if err != nil {
		return err
	}

	names, _ := store.List()
	renderer.Banner(cfg.DefaultModel, store.Project(), len(names))

	historyFile, err := config.GetHistoryPath()
	if err != nil {
		historyFile = ""
	}

	ctx := context.Background()

	// Explicit session reference: resume it and run one chat.
	if opts.sessionRef != "" {
		resolver := session.NewResolver(store)
		sess, err := resolver.ResolveAndLoad(opts.sessionRef)
		if err != nil {
			return err
		}
		adoptActiveModel(sess, cfg.DefaultModel, renderer)
		if err := applyContextFiles(sess, opts.contextFiles); err != nil {
			return err
		}
		return deps.UI.RunREPL(ctx, sess, client, renderer, historyFile)
	}

	// Explicit new session: create it and run one chat.
	if opts.newSession {
		sess, err := createSession(store, cfg, opts)
		if err != nil {
			return err
		}
		if err := applyContextFiles(sess, opts.contextFiles); err != nil {
			return err
		}
		return deps.UI.RunREPL(ctx, sess, client, renderer, historyFile)
	}

	// Selector loop: pick, chat, come back until the user quits.
	for {
		result, err := deps.UI.RunSelector(store, cfg.DefaultModel, store.Project())
		if err != nil {
			return err
		}
		if !result.Confirmed {
			renderer.Success("Goodbye! 👋")
			return nil
		}

		var sess *session.Session
		if result.IsNew {
			system, name, err := deps.UI.AskNewSession()
			if err != nil {
				return err
			}
			created := opts
			created.systemPrompt = system
			created.name = name
			sess, err = createSession(store, cfg, created)
			if err != nil {
				return err
			}
		} else {
			sess, err = store.Load(result.Filename)
			if err != nil {
				renderer.Error(err)
				continue
			}
			adoptActiveModel(sess, cfg.DefaultModel, renderer)
		}

		if err := applyContextFiles(sess, opts.contextFiles); err != nil {
			return err
		}
		if err := deps.UI.RunREPL(ctx, sess, client, renderer, historyFile); err != nil {
			return err
		}
	}
}

// createSession builds a new session from the chat flags. A preset fills
// the system prompt and, unless overridden, the session model.
func createSession(store *session.Store, cfg config.Config, opts chatOptions) (*session.Session, error) {
	system := opts.systemPrompt
	model := cfg.DefaultModel

	if opts.preset != "" {
		preset, err := config.GetPreset(opts.preset)
		if err != nil {
			return nil, err
		}
		if system == "" {
			system = preset.System
		}
		if preset.Model != "" && modelFlag == "" {
			model = preset.Model
		}
	}

	return store.NewSession(model, system, opts.name)
}

// adoptActiveModel continues a loaded session on the active model, warning
// when the stored model differs. The stored model only records what the
// session last ran on.
func adoptActiveModel(sess *session.Session, model string, renderer ui.Renderer) {
	if sess.Model != "" && sess.Model != model {
		renderer.Info(fmt.Sprintf("Session used %s, now using %s", sess.Model, model))
	}
	sess.Model = model
}

// applyContextFiles injects each --context-file into the session.
func applyContextFiles(sess *session.Session, paths []string) error {
	for _, path := range paths {
		if err := sess.AddFileContext(path, ""); err != nil {
			return fmt.Errorf("failed to add context file: %w", err)
		}
	}
	return nil
}
