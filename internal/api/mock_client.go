package api

import (
	"context"

	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	// Mock return values
	ChatVal      string
	ChatErr      error
	StreamEvents []models.StreamEvent
	StreamErr    error
	ModelsVal    []models.ModelInfo
	ModelsErr    error
	VersionVal   string
	VersionErr   error
	ModelName    string
	BaseURLVal   string

	// Call recorders
	ChatCalled   bool
	StreamCalled bool
	LastModel    string
	LastMessages []models.Message
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Chat(ctx context.Context, model string, messages []models.Message) (string, error) {
	m.ChatCalled = true
	m.LastModel = model
	m.LastMessages = append([]models.Message(nil), messages...)
	return m.ChatVal, m.ChatErr
}

func (m *MockClient) ChatStream(ctx context.Context, model string, messages []models.Message) (<-chan models.StreamEvent, error) {
	m.StreamCalled = true
	m.LastModel = model
	m.LastMessages = append([]models.Message(nil), messages...)
	if m.StreamErr != nil {
		return nil, m.StreamErr
	}

	events := m.StreamEvents
	if events == nil {
		events = []models.StreamEvent{
			{Delta: m.ChatVal},
			{Done: true},
		}
	}

	ch := make(chan models.StreamEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (m *MockClient) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	return m.ModelsVal, m.ModelsErr
}

func (m *MockClient) HasModel(ctx context.Context, name string) (bool, error) {
	if m.ModelsErr != nil {
		return false, m.ModelsErr
	}
	for _, mi := range m.ModelsVal {
		if mi.Name == name || mi.Name == name+":latest" {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockClient) Version(ctx context.Context) (string, error) {
	return m.VersionVal, m.VersionErr
}

func (m *MockClient) Ping(ctx context.Context) error {
	return m.VersionErr
}

func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return models.ModelDeepseekR1.Name
	}
	return m.ModelName
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBaseURL
	}
	return m.BaseURLVal
}
