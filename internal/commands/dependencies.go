package commands

import (
	"context"

	"github.com/Rithvik-katakamm/llama-utils/internal/api"
	"github.com/Rithvik-katakamm/llama-utils/internal/config"
	"github.com/Rithvik-katakamm/llama-utils/internal/session"
	"github.com/Rithvik-katakamm/llama-utils/internal/ui"
)

// UIInterface defines the interactive surfaces required from the ui package.
type UIInterface interface {
	RunSelector(store ui.SessionStore, modelName, project string) (ui.SelectorResult, error)
	AskNewSession() (systemPrompt, name string, err error)
	RunREPL(ctx context.Context, sess *session.Session, client session.ChatClient, renderer ui.Renderer, historyFile string) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the inference client; nil means build one from config.
	Client api.ClientInterface

	// UI is the interactive terminal surface.
	UI UIInterface
}

// DefaultUI is the production implementation of UIInterface.
type DefaultUI struct{}

func (d *DefaultUI) RunSelector(store ui.SessionStore, modelName, project string) (ui.SelectorResult, error) {
	return ui.RunSelector(store, modelName, project)
}

func (d *DefaultUI) AskNewSession() (string, string, error) {
	return ui.AskNewSession()
}

func (d *DefaultUI) RunREPL(ctx context.Context, sess *session.Session, client session.ChatClient, renderer ui.Renderer, historyFile string) error {
	return ui.NewREPL(sess, client, renderer, historyFile).Run(ctx)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		UI: &DefaultUI{},
	}
}

// deps is swapped out by tests.
var deps = NewDependencies()

// apiClient returns the injected client or builds one from the configuration.
func (d *Dependencies) apiClient(cfg config.Config) api.ClientInterface {
	if d.Client != nil {
		return d.Client
	}
	return api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithModel(cfg.DefaultModel),
	)
}
