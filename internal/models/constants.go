// Package models contains data types and constants shared by the Ollama
// client and the session store.
package models

// Endpoints for the local Ollama server. The chat path is served by the
// OpenAI-compatible layer; tags and version are native Ollama endpoints.
const (
	DefaultBaseURL  = "http://localhost:11434/v1"
	EndpointTags    = "/api/tags"
	EndpointVersion = "/api/version"
)

// Model represents a known Ollama model.
type Model struct {
	Name        string
	Description string
}

// Models commonly pulled on a local Ollama install. The server is the real
// source of truth; this list backs offline help output and completion.
var (
	ModelDeepseekR1 = Model{
		Name:        "deepseek-r1:7b",
		Description: "DeepSeek-R1 distill, reasoning-focused",
	}

	ModelLlama32 = Model{
		Name:        "llama3.2",
		Description: "Meta Llama 3.2, general purpose",
	}

	ModelLlama31 = Model{
		Name:        "llama3.1:8b",
		Description: "Meta Llama 3.1 8B",
	}

	ModelQwenCoder = Model{
		Name:        "qwen2.5-coder:7b",
		Description: "Qwen 2.5 coder, code generation",
	}

	ModelMistral = Model{
		Name:        "mistral",
		Description: "Mistral 7B",
	}

	ModelPhi3 = Model{
		Name:        "phi3:mini",
		Description: "Microsoft Phi-3 mini",
	}

	// DefaultModel matches the stock configuration.
	DefaultModel = ModelDeepseekR1
)

// AllModels returns the known model list.
func AllModels() []Model {
	return []Model{ModelDeepseekR1, ModelLlama32, ModelLlama31, ModelQwenCoder, ModelMistral, ModelPhi3}
}

// ModelFromName returns a known Model by name. Unknown names still produce a
// usable Model since Ollama accepts any locally pulled tag.
func ModelFromName(name string) Model {
	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	return Model{Name: name}
}
