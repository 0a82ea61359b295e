package session

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Exporter writes a session to an output stream in one format.
type Exporter interface {
	Export(sess *Session, w io.Writer) error
	Extension() string
}

// NewExporter creates an exporter for the given format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, yaml)", format)
	}
}

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

var roleEmoji = map[string]string{
	"user":      "👤",
	"assistant": "🤖",
	"system":    "🔧",
}

// Export writes the conversation as a Markdown transcript.
func (e *MarkdownExporter) Export(sess *Session, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Chat Session - %s\n\n", sess.Model))
	if sess.Project != "" {
		sb.WriteString(fmt.Sprintf("**Project:** %s\n\n", sess.Project))
	}
	sb.WriteString(fmt.Sprintf("**Date:** %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, msg := range sess.Messages {
		emoji := roleEmoji[msg.Role]
		if emoji == "" {
			emoji = "•"
		}
		title := strings.ToUpper(msg.Role[:1]) + msg.Role[1:]
		sb.WriteString(fmt.Sprintf("\n## %s %s\n\n", emoji, title))
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}

// JSONExporter exports sessions as the canonical JSON document
type JSONExporter struct{}

// Export writes the session in the same schema as the on-disk file.
func (e *JSONExporter) Export(sess *Session, w io.Writer) error {
	doc := document{
		Metadata: Metadata{
			Model:        sess.Model,
			Project:      sess.Project,
			Created:      sess.Created,
			LastModified: time.Now(),
			MessageCount: len(sess.Messages),
			ContextData:  sess.Context,
		},
		Messages: sess.Messages,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = w.Write(append(data, '\n'))
	return err
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}

// YAMLExporter exports sessions in YAML format
type YAMLExporter struct{}

type yamlMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

type yamlContextEntry struct {
	Title   string    `yaml:"title"`
	Content string    `yaml:"content"`
	Type    string    `yaml:"type"`
	AddedAt time.Time `yaml:"added_at"`
}

type yamlDocument struct {
	Model        string             `yaml:"model"`
	Project      string             `yaml:"project"`
	Created      time.Time          `yaml:"created"`
	MessageCount int                `yaml:"message_count"`
	Context      []yamlContextEntry `yaml:"context,omitempty"`
	Messages     []yamlMessage      `yaml:"messages"`
}

// Export writes the session as a YAML document.
func (e *YAMLExporter) Export(sess *Session, w io.Writer) error {
	doc := yamlDocument{
		Model:        sess.Model,
		Project:      sess.Project,
		Created:      sess.Created,
		MessageCount: len(sess.Messages),
	}
	for _, c := range sess.Context {
		doc.Context = append(doc.Context, yamlContextEntry(c))
	}
	for _, m := range sess.Messages {
		doc.Messages = append(doc.Messages, yamlMessage{Role: m.Role, Content: m.Content})
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}

// CodeBlock is a fenced code block extracted from message content.
type CodeBlock struct {
	Language string
	Code     string
}

var codeBlockPattern = regexp.MustCompile("(?s)```(\\w+)?\\n?(.*?)```")

// ExtractCodeBlocks finds fenced code blocks in text. The language defaults
// to "text" when the fence carries no tag.
func ExtractCodeBlocks(text string) []CodeBlock {
	matches := codeBlockPattern.FindAllStringSubmatch(text, -1)

	var blocks []CodeBlock
	for _, m := range matches {
		lang := strings.TrimSpace(m[1])
		if lang == "" {
			lang = "text"
		}
		blocks = append(blocks, CodeBlock{
			Language: lang,
			Code:     strings.TrimSpace(m[2]),
		})
	}
	return blocks
}

// FormatRelativeTime formats a time as a short relative string for listings.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "yesterday"
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
