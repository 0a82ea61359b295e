package api

import (
	"context"

	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// ClientInterface captures the client operations the command layer uses,
// so tests can substitute a mock.
type ClientInterface interface {
	Chat(ctx context.Context, model string, messages []models.Message) (string, error)
	ChatStream(ctx context.Context, model string, messages []models.Message) (<-chan models.StreamEvent, error)
	ListModels(ctx context.Context) ([]models.ModelInfo, error)
	HasModel(ctx context.Context, name string) (bool, error)
	Version(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Model() string
	BaseURL() string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)
