package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rithvik-katakamm/llama-utils/internal/api"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
	"github.com/Rithvik-katakamm/llama-utils/internal/session"
)

// recordingRenderer captures renderer calls for dispatch assertions.
type recordingRenderer struct {
	started bool
	aborted bool
	deltas  []string
	replies []string

	infos     []string
	successes []string
	errs      []error

	helpCalls  int
	statsCalls int
	queries    []string
}

func (r *recordingRenderer) Banner(model, project string, sessions int) {}

func (r *recordingRenderer) ChatStarted() {}

func (r *recordingRenderer) History(messages []models.Message) {}

func (r *recordingRenderer) Prompt() string { return "You: " }

func (r *recordingRenderer) ReplyStart() { r.started = true }

func (r *recordingRenderer) ReplyDelta(delta string) { r.deltas = append(r.deltas, delta) }

func (r *recordingRenderer) ReplyEnd(full string) { r.replies = append(r.replies, full) }

func (r *recordingRenderer) ReplyAborted() { r.aborted = true }

func (r *recordingRenderer) Info(msg string) { r.infos = append(r.infos, msg) }

func (r *recordingRenderer) Success(msg string) { r.successes = append(r.successes, msg) }

func (r *recordingRenderer) Error(err error) { r.errs = append(r.errs, err) }

func (r *recordingRenderer) Help(commands [][2]string) { r.helpCalls++ }

func (r *recordingRenderer) Stats(st session.Stats) { r.statsCalls++ }

func (r *recordingRenderer) Matches(query string, matches []session.Match) {
	r.queries = append(r.queries, query)
}

func newTestREPL(t *testing.T) (*REPL, *session.Session, *api.MockClient, *recordingRenderer) {
	t.Helper()

	store, err := session.NewStore(t.TempDir(), "repl-test")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	sess, err := store.NewSession("test-model", "", "chat")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	client := &api.MockClient{
		StreamEvents: []models.StreamEvent{
			{Delta: "Hi "},
			{Delta: "there"},
			{Done: true},
		},
	}
	rec := &recordingRenderer{}
	return NewREPL(sess, client, rec, ""), sess, client, rec
}

func TestREPL_HandleLine_Quit(t *testing.T) {
	repl, _, _, _ := newTestREPL(t)

	for _, input := range []string{"quit", "exit", "q", "QUIT", "  quit  "} {
		if !repl.handleLine(context.Background(), input) {
			t.Errorf("handleLine(%q) = false, want quit", input)
		}
	}
}

func TestREPL_HandleLine_EmptyIgnored(t *testing.T) {
	repl, _, client, rec := newTestREPL(t)

	for _, input := range []string{"", "   ", "\t"} {
		if repl.handleLine(context.Background(), input) {
			t.Errorf("handleLine(%q) should not quit", input)
		}
	}
	if client.StreamCalled {
		t.Error("empty input must not reach the client")
	}
	if rec.started {
		t.Error("empty input must not start a reply")
	}
}

func TestREPL_HandleLine_Help(t *testing.T) {
	repl, _, _, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "help")

	if rec.helpCalls != 1 {
		t.Errorf("helpCalls = %d, want 1", rec.helpCalls)
	}
}

func TestREPL_HandleLine_Stats(t *testing.T) {
	repl, _, _, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "stats")

	if rec.statsCalls != 1 {
		t.Errorf("statsCalls = %d, want 1", rec.statsCalls)
	}
}

func TestREPL_HandleLine_Search(t *testing.T) {
	repl, sess, _, rec := newTestREPL(t)

	if err := sess.AddMessage(models.RoleUser, "docker compose up", true); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	repl.handleLine(context.Background(), "search Docker")

	if len(rec.queries) != 1 || rec.queries[0] != "Docker" {
		t.Errorf("queries = %v, want [Docker]", rec.queries)
	}
}

func TestREPL_HandleLine_SendsMessage(t *testing.T) {
	repl, sess, client, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "hello model")

	if !rec.started {
		t.Error("ReplyStart not called")
	}
	if len(rec.deltas) != 2 {
		t.Errorf("deltas = %v, want 2 fragments", rec.deltas)
	}
	if len(rec.replies) != 1 || rec.replies[0] != "Hi there" {
		t.Errorf("replies = %v, want [Hi there]", rec.replies)
	}
	if client.LastModel != "test-model" {
		t.Errorf("LastModel = %s, want test-model", client.LastModel)
	}
	if len(sess.Messages) != 2 {
		t.Errorf("session has %d messages, want user + assistant", len(sess.Messages))
	}
}

func TestREPL_HandleLine_SendFailure(t *testing.T) {
	repl, sess, client, rec := newTestREPL(t)
	client.StreamErr = errNetwork

	repl.handleLine(context.Background(), "hello model")

	if !rec.aborted {
		t.Error("ReplyAborted not called on stream failure")
	}
	if len(rec.errs) != 1 {
		t.Errorf("errs = %v, want one error", rec.errs)
	}
	if len(rec.replies) != 0 {
		t.Errorf("replies = %v, want none", rec.replies)
	}
	// The user message survives the failure for a later retry.
	if len(sess.Messages) != 1 || sess.Messages[0].Role != models.RoleUser {
		t.Errorf("messages = %+v, want the kept user message", sess.Messages)
	}
}

func TestREPL_HandleLine_CopyWithoutReply(t *testing.T) {
	repl, _, _, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "copy")

	if len(rec.infos) != 1 {
		t.Errorf("infos = %v, want a nothing-to-copy notice", rec.infos)
	}
}

func TestREPL_HandleLine_CodeWithoutReply(t *testing.T) {
	repl, _, _, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "code")

	if len(rec.infos) != 1 {
		t.Errorf("infos = %v, want a nothing-to-copy notice", rec.infos)
	}
}

func TestREPL_HandleLine_CodeBadIndex(t *testing.T) {
	repl, sess, _, rec := newTestREPL(t)

	reply := "Use this:\n```go\nfmt.Println(1)\n```\n"
	if err := sess.AddMessage(models.RoleAssistant, reply, true); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	repl.handleLine(context.Background(), "code 5")

	if len(rec.errs) != 1 {
		t.Errorf("errs = %v, want an index error", rec.errs)
	}
}

func TestREPL_HandleLine_ContextMissingFile(t *testing.T) {
	repl, sess, _, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "context /no/such/file.md")

	if len(rec.errs) != 1 {
		t.Errorf("errs = %v, want a read error", rec.errs)
	}
	if len(sess.Context) != 0 {
		t.Errorf("context entries = %d, want 0 after failure", len(sess.Context))
	}
}

func TestREPL_HandleLine_ContextUsage(t *testing.T) {
	repl, _, _, rec := newTestREPL(t)

	repl.handleLine(context.Background(), "context")

	if len(rec.errs) != 1 {
		t.Errorf("errs = %v, want a usage error", rec.errs)
	}
}

func TestREPL_HandleLine_ContextAddsFile(t *testing.T) {
	repl, sess, _, rec := newTestREPL(t)

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# Notes\nremember this"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	repl.handleLine(context.Background(), "context "+path)

	if len(rec.errs) != 0 {
		t.Fatalf("unexpected errors: %v", rec.errs)
	}
	if len(rec.successes) != 1 {
		t.Errorf("successes = %v, want confirmation", rec.successes)
	}
	if len(sess.Context) != 1 {
		t.Errorf("context entries = %d, want 1", len(sess.Context))
	}
}
