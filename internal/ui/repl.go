package ui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"

	"github.com/Rithvik-katakamm/llama-utils/internal/session"
)

// replCommands lists the interactive commands for help output.
var replCommands = [][2]string{
	{"quit", "Exit the chat"},
	{"help", "Show this help message"},
	{"stats", "Show session statistics"},
	{"search <query>", "Search messages for text"},
	{"copy", "Copy the last response to the clipboard"},
	{"code [n]", "Copy the nth code block from the last response"},
	{"context <path>", "Add a file as context"},
}

// REPL drives one interactive chat over a single session.
type REPL struct {
	sess     *session.Session
	client   session.ChatClient
	renderer Renderer

	historyFile string
}

// NewREPL wires a session, an inference client and a renderer into an
// interactive loop. historyFile may be empty to skip input persistence.
func NewREPL(sess *session.Session, client session.ChatClient, renderer Renderer, historyFile string) *REPL {
	return &REPL{
		sess:        sess,
		client:      client,
		renderer:    renderer,
		historyFile: historyFile,
	}
}

// Run starts the interactive loop and returns when the user quits. Ctrl-C
// on an empty line and Ctrl-D both exit.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.renderer.Prompt(),
		HistoryFile:     r.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize input: %w", err)
	}
	defer rl.Close()

	r.renderer.ChatStarted()
	if len(r.sess.Messages) > 1 {
		r.renderer.History(r.sess.Recent(6))
	}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		if r.handleLine(ctx, line) {
			break
		}
	}

	r.renderer.Success("Chat session ended")
	return nil
}

// handleLine dispatches one input line. It returns true when the loop
// should exit.
func (r *REPL) handleLine(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd := strings.ToLower(input)
	switch {
	case cmd == "quit" || cmd == "exit" || cmd == "q":
		return true
	case cmd == "help":
		r.renderer.Help(replCommands)
	case cmd == "stats":
		r.renderer.Stats(r.sess.Stats())
	case strings.HasPrefix(cmd, "search "):
		query := strings.TrimSpace(input[len("search "):])
		r.renderer.Matches(query, r.sess.Search(query, ""))
	case cmd == "copy":
		r.copyLast()
	case cmd == "code" || strings.HasPrefix(cmd, "code "):
		r.copyCode(input)
	case cmd == "context":
		r.addContext("")
	case strings.HasPrefix(cmd, "context "):
		r.addContext(strings.TrimSpace(input[len("context "):]))
	default:
		r.send(ctx, input)
	}
	return false
}

func (r *REPL) send(ctx context.Context, input string) {
	r.renderer.ReplyStart()
	reply, err := r.sess.SendStream(ctx, r.client, input, r.renderer.ReplyDelta)
	if err != nil {
		r.renderer.ReplyAborted()
		r.renderer.Error(err)
		return
	}
	r.renderer.ReplyEnd(reply)
}

func (r *REPL) copyLast() {
	reply, ok := r.sess.LastAssistant()
	if !ok {
		r.renderer.Info("Nothing to copy yet")
		return
	}
	if err := clipboard.WriteAll(reply); err != nil {
		r.renderer.Error(fmt.Errorf("failed to copy to clipboard: %w", err))
		return
	}
	r.renderer.Success("Copied last response to clipboard")
}

func (r *REPL) copyCode(input string) {
	reply, ok := r.sess.LastAssistant()
	if !ok {
		r.renderer.Info("Nothing to copy yet")
		return
	}

	blocks := session.ExtractCodeBlocks(reply)
	if len(blocks) == 0 {
		r.renderer.Info("No code blocks in the last response")
		return
	}

	n := 1
	if fields := strings.Fields(input); len(fields) > 1 {
		v, err := strconv.Atoi(fields[1])
		if err != nil || v < 1 || v > len(blocks) {
			r.renderer.Error(fmt.Errorf("code block index must be 1-%d", len(blocks)))
			return
		}
		n = v
	}

	if err := clipboard.WriteAll(blocks[n-1].Code); err != nil {
		r.renderer.Error(fmt.Errorf("failed to copy to clipboard: %w", err))
		return
	}
	r.renderer.Success(fmt.Sprintf("Copied code block %d (%s) to clipboard", n, blocks[n-1].Language))
}

func (r *REPL) addContext(path string) {
	if path == "" {
		r.renderer.Error(fmt.Errorf("usage: context <path>"))
		return
	}
	if err := r.sess.AddFileContext(path, ""); err != nil {
		r.renderer.Error(err)
		return
	}
	r.renderer.Success(fmt.Sprintf("Added %s as context", filepath.Base(path)))
}
