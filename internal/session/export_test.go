package session

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

func exportFixture() *Session {
	return &Session{
		Model:   "deepseek-r1:7b",
		Project: "demo",
		Created: time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC),
		Messages: []models.Message{
			models.SystemMessage("Be brief."),
			models.UserMessage("What is a pointer?"),
			models.AssistantMessage("A pointer holds a memory address."),
		},
		Context: []ContextEntry{
			{Title: "Notes", Content: "intro course", Type: ContextTypeText, AddedAt: time.Date(2025, 1, 14, 9, 31, 0, 0, time.UTC)},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"md", "md", false},
		{"markdown", "md", false},
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"yml", "yaml", false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		exp, err := NewExporter(tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewExporter(%q) should fail", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewExporter(%q) failed: %v", tt.format, err)
			continue
		}
		if exp.Extension() != tt.wantExt {
			t.Errorf("Extension() = %s, want %s", exp.Extension(), tt.wantExt)
		}
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	exp := &MarkdownExporter{}

	if err := exp.Export(exportFixture(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := buf.String()
	checks := []string{
		"# Chat Session - deepseek-r1:7b",
		"**Project:** demo",
		"**Date:**",
		"## 🔧 System",
		"## 👤 User",
		"## 🤖 Assistant",
		"What is a pointer?",
		"A pointer holds a memory address.",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestMarkdownExporter_NoProject(t *testing.T) {
	sess := exportFixture()
	sess.Project = ""

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sess, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if strings.Contains(buf.String(), "**Project:**") {
		t.Error("project line should be omitted when empty")
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	exp := &JSONExporter{}

	if err := exp.Export(exportFixture(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Metadata.Model != "deepseek-r1:7b" {
		t.Errorf("Model = %s, want deepseek-r1:7b", doc.Metadata.Model)
	}
	if doc.Metadata.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3", doc.Metadata.MessageCount)
	}
	if len(doc.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(doc.Messages))
	}
	if len(doc.Metadata.ContextData) != 1 {
		t.Errorf("expected 1 context entry, got %d", len(doc.Metadata.ContextData))
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	exp := &YAMLExporter{}

	if err := exp.Export(exportFixture(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	if doc.Model != "deepseek-r1:7b" {
		t.Errorf("Model = %s, want deepseek-r1:7b", doc.Model)
	}
	if doc.Project != "demo" {
		t.Errorf("Project = %s, want demo", doc.Project)
	}
	if len(doc.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(doc.Messages))
	}
	if doc.Messages[1].Role != "user" {
		t.Errorf("Role = %s, want user", doc.Messages[1].Role)
	}
	if len(doc.Context) != 1 {
		t.Errorf("expected 1 context entry, got %d", len(doc.Context))
	}
}

func TestExtractCodeBlocks(t *testing.T) {
	text := "Here is Go:\n```go\nfmt.Println(\"hi\")\n```\nand plain:\n```\nno language\n```"

	blocks := ExtractCodeBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	if blocks[0].Language != "go" {
		t.Errorf("Language = %s, want go", blocks[0].Language)
	}
	if blocks[0].Code != `fmt.Println("hi")` {
		t.Errorf("Code = %q", blocks[0].Code)
	}

	if blocks[1].Language != "text" {
		t.Errorf("Language = %s, want text", blocks[1].Language)
	}
	if blocks[1].Code != "no language" {
		t.Errorf("Code = %q, want no language", blocks[1].Code)
	}
}

func TestExtractCodeBlocks_None(t *testing.T) {
	if blocks := ExtractCodeBlocks("just prose, no fences"); len(blocks) != 0 {
		t.Errorf("expected 0 blocks, got %d", len(blocks))
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "unknown"},
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-30 * time.Hour), "yesterday"},
		{now.Add(-3 * 24 * time.Hour), "3d ago"},
	}

	for _, tt := range tests {
		if got := FormatRelativeTime(tt.t); got != tt.want {
			t.Errorf("FormatRelativeTime(%v) = %s, want %s", tt.t, got, tt.want)
		}
	}

	old := now.Add(-60 * 24 * time.Hour)
	if got := FormatRelativeTime(old); !strings.Contains(got, "-") {
		t.Errorf("old timestamp should format as a date, got %s", got)
	}
}
