package models

import (
	"fmt"
	"time"
)

// StreamEvent is one unit of a streamed chat completion. Exactly one of
// Delta, Err or Done is meaningful per event; Done carries the final Usage
// when the server reports one.
type StreamEvent struct {
	Delta string
	Err   error
	Done  bool
	Usage *Usage
}

// Usage reports token accounting for a completed request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ModelInfo describes a model installed on the server, as reported by the
// tags endpoint.
type ModelInfo struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// SizeHuman returns the model size formatted as GB/MB.
func (m ModelInfo) SizeHuman() string {
	const (
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case m.Size >= gb:
		return fmt.Sprintf("%.1f GB", float64(m.Size)/gb)
	case m.Size >= mb:
		return fmt.Sprintf("%.0f MB", float64(m.Size)/mb)
	case m.Size > 0:
		return fmt.Sprintf("%d B", m.Size)
	}
	return "unknown"
}
