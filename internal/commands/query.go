package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Rithvik-katakamm/llama-utils/internal/api"
	"github.com/Rithvik-katakamm/llama-utils/internal/config"
	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
	"github.com/Rithvik-katakamm/llama-utils/internal/session"
	"github.com/Rithvik-katakamm/llama-utils/internal/ui"
)

// runQuery executes a single prompt and outputs the reply.
// If rawOutput is true, only the raw response text is printed without decoration.
func runQuery(prompt string, rawOutput bool) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	cfg := effectiveConfig()
	client := deps.apiClient(cfg)
	ctx := context.Background()

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Model: %s\n", cfg.DefaultModel)
		fmt.Fprintf(os.Stderr, "[verbose] Server: %s\n", cfg.BaseURL)
	}

	// --session appends the query to a saved conversation so the model
	// sees its history.
	var sess *session.Session
	if sessionFlag != "" {
		store, err := session.NewStore(cfg.ConversationsDir, cfg.DefaultProject)
		if err != nil {
			return err
		}
		sess, err = session.NewResolver(store).ResolveAndLoad(sessionFlag)
		if err != nil {
			return err
		}
		if sess.Model != "" && sess.Model != cfg.DefaultModel {
			fmt.Fprintf(os.Stderr, "Session used %s, now using %s\n", sess.Model, cfg.DefaultModel)
		}
		sess.Model = cfg.DefaultModel
	}

	start := time.Now()

	// Raw or file output: no live rendering, just the response text.
	if rawOutput || outputFlag != "" {
		text, err := completeQuiet(ctx, cfg, client, sess, prompt, rawOutput)
		if err != nil {
			return err
		}
		if cfg.Verbose && !rawOutput {
			fmt.Fprintf(os.Stderr, "[verbose] Request took %s\n", time.Since(start).Round(time.Millisecond))
		}
		return writeQueryOutput(cfg, text, rawOutput)
	}

	// Live path: stream through the renderer so the one-shot query behaves
	// like the interactive chat in every visual mode.
	renderer := ui.NewRenderer(cfg)
	renderer.ReplyStart()

	var text string
	var err error
	if sess != nil {
		text, err = sess.SendStream(ctx, client, prompt, renderer.ReplyDelta)
	} else {
		text, err = streamOnce(ctx, cfg, client, prompt, renderer.ReplyDelta)
	}
	if err != nil {
		renderer.ReplyAborted()
		return err
	}
	renderer.ReplyEnd(text)

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[verbose] Request took %s\n", time.Since(start).Round(time.Millisecond))
	}

	if cfg.CopyToClipboard {
		copyReply(renderer, text)
	}
	return nil
}

// completeQuiet generates the reply without live output. A spinner covers
// the wait on a rich terminal; raw mode stays completely silent.
func completeQuiet(ctx context.Context, cfg config.Config, client api.ClientInterface, sess *session.Session, prompt string, rawOutput bool) (string, error) {
	var spin *ui.Spinner
	if !rawOutput && ui.ResolveMode(cfg.VisualMode) == config.VisualRich {
		spin = ui.NewSpinner("Thinking")
		spin.Start()
	}

	var text string
	var err error
	if sess != nil {
		text, err = sess.Send(ctx, client, prompt)
	} else {
		text, err = client.Chat(ctx, cfg.DefaultModel, queryMessages(cfg, prompt))
		if err == nil && strings.TrimSpace(text) == "" {
			err = apierrors.ErrEmptyResponse
		}
	}

	if err != nil {
		if spin != nil {
			spin.StopWithError()
		}
		return "", err
	}
	if spin != nil {
		spin.StopWithSuccess("Done")
	}
	return text, nil
}

// streamOnce streams a sessionless query, forwarding each delta to onDelta.
func streamOnce(ctx context.Context, cfg config.Config, client api.ClientInterface, prompt string, onDelta func(string)) (string, error) {
	events, err := client.ChatStream(ctx, cfg.DefaultModel, queryMessages(cfg, prompt))
	if err != nil {
		return "", err
	}

	var reply strings.Builder
	for event := range events {
		if event.Err != nil {
			return "", event.Err
		}
		if event.Delta != "" {
			reply.WriteString(event.Delta)
			if onDelta != nil {
				onDelta(event.Delta)
			}
		}
	}

	text := reply.String()
	if strings.TrimSpace(text) == "" {
		return "", apierrors.ErrEmptyResponse
	}
	return text, nil
}

// queryMessages builds the message list for a sessionless query. The default
// preset, when one is configured, contributes the system prompt.
func queryMessages(cfg config.Config, prompt string) []models.Message {
	var messages []models.Message

	preset, err := config.GetDefaultPreset()
	if err == nil && preset != nil && preset.Name != "default" && preset.System != "" {
		messages = append(messages, models.SystemMessage(preset.System))
	}

	return append(messages, models.UserMessage(prompt))
}

// writeQueryOutput prints or saves the finished reply for the raw and
// file-output paths.
func writeQueryOutput(cfg config.Config, text string, rawOutput bool) error {
	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(text)
		return nil
	}

	renderer := ui.NewRenderer(cfg)
	if cfg.CopyToClipboard {
		copyReply(renderer, text)
	}

	if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	renderer.Success(fmt.Sprintf("Response saved to %s", outputFlag))
	return nil
}

// copyReply copies the reply to the clipboard, warning instead of failing
// when the clipboard is unavailable.
func copyReply(renderer ui.Renderer, text string) {
	if err := clipboard.WriteAll(text); err != nil {
		renderer.Info(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err))
		return
	}
	renderer.Info("✓ Copied to clipboard")
}
