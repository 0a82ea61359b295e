package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/tidwall/gjson"

	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
	"github.com/Rithvik-katakamm/llama-utils/internal/logger"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// Chat sends the full message history and returns the complete reply.
func (c *Client) Chat(ctx context.Context, model string, messages []models.Message) (string, error) {
	if model == "" {
		model = c.model
	}

	completion, err := c.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toParams(messages),
	})
	if err != nil {
		return "", c.mapError(err)
	}

	if len(completion.Choices) == 0 {
		return "", apierrors.ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}

// ChatStream sends the full message history and streams the reply as it is
// generated. The returned channel is closed after the final event; a failed
// stream delivers the error as an event.
func (c *Client) ChatStream(ctx context.Context, model string, messages []models.Message) (<-chan models.StreamEvent, error) {
	if model == "" {
		model = c.model
	}

	stream := c.oai.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toParams(messages),
	})

	ch := make(chan models.StreamEvent, 16)
	go c.processStream(ctx, stream, ch)
	return ch, nil
}

func (c *Client) processStream(ctx context.Context, stream *ssestream.Stream[openai.ChatCompletionChunk], ch chan<- models.StreamEvent) {
	defer close(ch)

	var usage *models.Usage

	for stream.Next() {
		select {
		case <-ctx.Done():
			ch <- models.StreamEvent{Err: c.mapError(ctx.Err())}
			return
		default:
		}

		chunk := stream.Current()

		// The final chunk may carry only usage
		if chunk.Usage.TotalTokens > 0 {
			usage = &models.Usage{
				PromptTokens:     int(chunk.Usage.PromptTokens),
				CompletionTokens: int(chunk.Usage.CompletionTokens),
				TotalTokens:      int(chunk.Usage.TotalTokens),
			}
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta

		// Reasoning models emit thinking as reasoning_content, which the
		// SDK struct does not carry. Drop it so it never reaches output.
		if delta.Content == "" {
			if rc := extractReasoningContent(delta.RawJSON()); rc != "" {
				continue
			}
		}

		if delta.Content != "" {
			ch <- models.StreamEvent{Delta: delta.Content}
		}
	}

	if err := stream.Err(); err != nil {
		ch <- models.StreamEvent{Err: c.mapError(err)}
		return
	}

	ch <- models.StreamEvent{Done: true, Usage: usage}
}

// toParams converts stored messages to SDK params.
func toParams(messages []models.Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			params = append(params, openai.SystemMessage(msg.Content))
		case models.RoleAssistant:
			params = append(params, openai.AssistantMessage(msg.Content))
		default:
			params = append(params, openai.UserMessage(msg.Content))
		}
	}
	return params
}

// extractReasoningContent pulls the reasoning_content field from a raw
// delta chunk, used by DeepSeek-style reasoning models.
func extractReasoningContent(rawJSON string) string {
	return gjson.Get(rawJSON, "reasoning_content").String()
}

// mapError translates SDK and transport failures into the error types the
// rest of the program matches on.
func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		logger.Debug("api error", "status", apiErr.StatusCode, "message", apiErr.Message)
		return apierrors.NewAPIError(apiErr.StatusCode, "/chat/completions", apiErr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError("request timed out waiting for the model")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apierrors.NewTimeoutError("request timed out waiting for the model")
	}

	return apierrors.NewConnectionError(c.baseURL, err)
}
