// Package session provides project-scoped chat session persistence: JSON
// session files under <conversations_dir>/<project>/, rolling message
// history, and context injection into the system prompt.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
	"github.com/Rithvik-katakamm/llama-utils/internal/logger"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// Context entry types
const (
	ContextTypeText = "text"
	ContextTypeFile = "file"
)

// ContextEntry is supplementary text injected into the system prompt,
// distinct from conversational messages.
type ContextEntry struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Type    string    `json:"type"` // "text" or "file"
	AddedAt time.Time `json:"added_at"`
}

// Metadata is the denormalized session header, recomputed on every save.
type Metadata struct {
	Model        string         `json:"model"`
	Project      string         `json:"project"`
	Created      time.Time      `json:"created"`
	LastModified time.Time      `json:"last_modified"`
	MessageCount int            `json:"message_count"`
	ContextData  []ContextEntry `json:"context_data"`
}

// document is the on-disk session file layout.
type document struct {
	Metadata Metadata         `json:"metadata"`
	Messages []models.Message `json:"messages"`
}

// Session is one conversation bound to a single JSON file. It is an explicit
// value handed out by a Store; there is no implicit process-wide session.
type Session struct {
	Model    string
	Project  string
	Created  time.Time
	Messages []models.Message
	Context  []ContextEntry

	path  string
	store *Store
}

// ChatClient is the inference collaborator invoked by Send. Implementations
// receive the model name and the full ordered message history.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []models.Message) (string, error)
	ChatStream(ctx context.Context, model string, messages []models.Message) (<-chan models.StreamEvent, error)
}

// Filename returns the base name of the backing file, or "" for an unbound
// session.
func (s *Session) Filename() string {
	if s.path == "" {
		return ""
	}
	return filepath.Base(s.path)
}

// Path returns the full path of the backing file.
func (s *Session) Path() string {
	return s.path
}

// AddMessage appends a message to the in-memory history. When save is true
// and the session has a backing file, the full document is rewritten.
func (s *Session) AddMessage(role, content string, save bool) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: %s", apierrors.ErrInvalidRole, role)
	}

	s.Messages = append(s.Messages, models.Message{Role: role, Content: content})

	if save && s.path != "" {
		return s.Save()
	}
	return nil
}

// AddContext appends a context entry and emits a system message summarizing
// it, persisted immediately.
func (s *Session) AddContext(title, content, contextType string) error {
	if contextType == "" {
		contextType = ContextTypeText
	}

	s.Context = append(s.Context, ContextEntry{
		Title:   title,
		Content: content,
		Type:    contextType,
		AddedAt: time.Now(),
	})

	contextMsg := fmt.Sprintf("Context - %s:\n%s", title, content)
	return s.AddMessage(models.RoleSystem, contextMsg, true)
}

// AddFileContext reads a file and adds its content as context. The title
// defaults to "File: <basename>". On read failure the context list is left
// untouched.
func (s *Session) AddFileContext(path, title string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read file %s: %w", path, err)
	}

	if title == "" {
		title = "File: " + filepath.Base(path)
	}
	return s.AddContext(title, string(data), ContextTypeFile)
}

// Send appends the user input, runs the inference client over the full
// history and appends the assistant reply, persisting the session. On
// inference failure the user message stays in the session and is saved, so
// it is not lost.
func (s *Session) Send(ctx context.Context, client ChatClient, input string) (string, error) {
	return s.SendStream(ctx, client, input, nil)
}

// SendStream is Send with a per-delta callback for streaming display.
// onDelta may be nil.
func (s *Session) SendStream(ctx context.Context, client ChatClient, input string, onDelta func(string)) (string, error) {
	if s.path == "" {
		return "", apierrors.ErrNoSession
	}

	s.Messages = append(s.Messages, models.UserMessage(input))

	events, err := client.ChatStream(ctx, s.Model, s.Messages)
	if err != nil {
		s.saveAfterFailure()
		return "", err
	}

	var reply strings.Builder
	for ev := range events {
		if ev.Err != nil {
			s.saveAfterFailure()
			return "", ev.Err
		}
		if ev.Delta != "" {
			if onDelta != nil {
				onDelta(ev.Delta)
			}
			reply.WriteString(ev.Delta)
		}
		if ev.Done && ev.Usage != nil {
			logger.Debug("chat completed", "model", s.Model,
				"prompt_tokens", ev.Usage.PromptTokens,
				"completion_tokens", ev.Usage.CompletionTokens)
		}
	}

	text := reply.String()
	if text == "" {
		s.saveAfterFailure()
		return "", apierrors.ErrEmptyResponse
	}

	s.Messages = append(s.Messages, models.AssistantMessage(text))
	if err := s.Save(); err != nil {
		return text, err
	}
	return text, nil
}

// saveAfterFailure persists the session so the pending user message
// survives the process; the original send error is what the caller sees.
func (s *Session) saveAfterFailure() {
	if err := s.Save(); err != nil {
		logger.Debug("save after failed send", "error", err)
	}
}

// Save rewrites the full session document with recomputed metadata.
func (s *Session) Save() error {
	if s.store == nil || s.path == "" {
		return apierrors.ErrNoSession
	}
	return s.store.saveSession(s)
}

// Stats summarizes the current session.
type Stats struct {
	TotalMessages     int
	UserMessages      int
	AssistantMessages int
	SystemMessages    int
	TotalCharacters   int
	ContextItems      int
}

// Stats computes per-role counts, total characters and the context item
// count. An empty history yields the zero value.
func (s *Session) Stats() Stats {
	if len(s.Messages) == 0 {
		return Stats{}
	}

	st := Stats{
		TotalMessages: len(s.Messages),
		ContextItems:  len(s.Context),
	}
	for _, m := range s.Messages {
		switch m.Role {
		case models.RoleUser:
			st.UserMessages++
		case models.RoleAssistant:
			st.AssistantMessages++
		case models.RoleSystem:
			st.SystemMessages++
		}
		st.TotalCharacters += len(m.Content)
	}
	return st
}

// LastAssistant returns the most recent assistant reply.
func (s *Session) LastAssistant() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == models.RoleAssistant {
			return s.Messages[i].Content, true
		}
	}
	return "", false
}

// Recent returns the last n messages for history replay.
func (s *Session) Recent(n int) []models.Message {
	if n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	if n >= len(s.Messages) {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// Preview describes the last message for listings, truncated to 50 chars.
func (s *Session) Preview() string {
	return previewOf(s.Messages)
}

func previewOf(messages []models.Message) string {
	if len(messages) == 0 {
		return "Empty session"
	}

	content := messages[len(messages)-1].Content
	if len(content) > 50 {
		content = content[:50] + "..."
	}
	return fmt.Sprintf("Last: %q", content)
}
