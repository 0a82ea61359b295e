package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

func TestSession_Search(t *testing.T) {
	_, sess := newTestSession(t)

	sess.AddMessage(models.RoleUser, "How do goroutines work?", false)
	sess.AddMessage(models.RoleAssistant, "Goroutines are lightweight threads.", false)
	sess.AddMessage(models.RoleUser, "What about channels?", false)

	matches := sess.Search("goroutine", "")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	if matches[0].Index != 0 {
		t.Errorf("Index = %d, want 0", matches[0].Index)
	}
	if matches[0].Role != models.RoleUser {
		t.Errorf("Role = %s, want user", matches[0].Role)
	}
	if matches[1].Role != models.RoleAssistant {
		t.Errorf("Role = %s, want assistant", matches[1].Role)
	}
}

func TestSession_Search_CaseInsensitive(t *testing.T) {
	_, sess := newTestSession(t)

	sess.AddMessage(models.RoleUser, "Tell me about DOCKER containers", false)

	if matches := sess.Search("docker", ""); len(matches) != 1 {
		t.Errorf("lowercase query: expected 1 match, got %d", len(matches))
	}
	if matches := sess.Search("Docker", ""); len(matches) != 1 {
		t.Errorf("mixed-case query: expected 1 match, got %d", len(matches))
	}
}

func TestSession_Search_RoleFilter(t *testing.T) {
	_, sess := newTestSession(t)

	sess.AddMessage(models.RoleUser, "error handling in Go", false)
	sess.AddMessage(models.RoleAssistant, "Go error handling uses explicit returns.", false)

	matches := sess.Search("error", models.RoleAssistant)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Role != models.RoleAssistant {
		t.Errorf("Role = %s, want assistant", matches[0].Role)
	}
}

func TestSession_Search_NoMatches(t *testing.T) {
	_, sess := newTestSession(t)

	sess.AddMessage(models.RoleUser, "hello", false)

	if matches := sess.Search("kubernetes", ""); len(matches) != 0 {
		t.Errorf("expected 0 matches, got %d", len(matches))
	}
}

func TestStore_Search(t *testing.T) {
	store, _ := NewStore(t.TempDir(), "default")

	a, _ := store.NewSession("m", "", "a")
	a.AddMessage(models.RoleUser, "deploying with terraform", true)

	b, _ := store.NewSession("m", "", "b")
	b.AddMessage(models.RoleUser, "terraform state files", true)
	b.AddMessage(models.RoleAssistant, "State lives in the backend.", true)

	c, _ := store.NewSession("m", "", "c")
	c.AddMessage(models.RoleUser, "unrelated question", true)

	results, err := store.Search("terraform")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 files with matches, got %d", len(results))
	}

	total := 0
	for _, fm := range results {
		if fm.Filename == "c.json" {
			t.Error("c.json should not match")
		}
		total += len(fm.Matches)
	}
	if total != 2 {
		t.Errorf("expected 2 matches total, got %d", total)
	}
}

func TestStore_Search_SkipsCorrupt(t *testing.T) {
	store, _ := NewStore(t.TempDir(), "default")

	good, _ := store.NewSession("m", "", "good")
	good.AddMessage(models.RoleUser, "find me", true)

	bad := filepath.Join(store.Dir(), "bad.json")
	if err := os.WriteFile(bad, []byte("find {{{"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	results, err := store.Search("find")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 file with matches, got %d", len(results))
	}
	if results[0].Filename != "good.json" {
		t.Errorf("Filename = %s, want good.json", results[0].Filename)
	}
}

func TestSearchSnippet_Window(t *testing.T) {
	text := strings.Repeat("a", 200) + "NEEDLE" + strings.Repeat("b", 200)

	snippet := searchSnippet(text, "needle", 100)

	if !strings.HasPrefix(snippet, "...") {
		t.Errorf("snippet should start with ellipsis: %q", snippet)
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Errorf("snippet should end with ellipsis: %q", snippet)
	}
	if !strings.Contains(snippet, "NEEDLE") {
		t.Errorf("snippet should contain the match: %q", snippet)
	}
	// 100 window chars plus both markers
	if len(snippet) != 106 {
		t.Errorf("snippet length = %d, want 106", len(snippet))
	}
}

func TestSearchSnippet_MatchAtStart(t *testing.T) {
	text := "needle in a haystack"

	snippet := searchSnippet(text, "needle", 100)

	if strings.HasPrefix(snippet, "...") {
		t.Errorf("no leading ellipsis expected: %q", snippet)
	}
	if snippet != text {
		t.Errorf("snippet = %q, want full text", snippet)
	}
}

func TestSearchSnippet_ShortText(t *testing.T) {
	if got := searchSnippet("tiny", "tiny", 100); got != "tiny" {
		t.Errorf("snippet = %q, want tiny", got)
	}
}
