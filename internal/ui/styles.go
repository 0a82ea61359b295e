// Package ui provides the interactive console surface: the chat REPL, the
// session selector and the renderer that decides how much decoration goes
// to the terminal.
package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
)

// Tokyo Night palette shared by every styled surface.
var (
	colorBorder   = lipgloss.Color("#414868")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorAccent   = lipgloss.Color("#bb9af7")
	colorWarning  = lipgloss.Color("#e0af68")
	colorError    = lipgloss.Color("#f7768e")
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
)

// Gradient colors for the animated spinner.
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	// Banner panel around the session header
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	// Title inside the banner
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Model/project line under the title
	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	// Hint text style
	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMute).
			Italic(true)

	// User label in history replay
	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	// Assistant label in history replay and replies
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Reply bubble around rendered markdown
	replyBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	// Success confirmations
	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Warnings
	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Errors
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// Stats and search output labels
	statKeyStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Bold(true)

	statValueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// Selector styles
	selectorHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(1).
				Align(lipgloss.Center)

	selectorPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(1, 2)

	selectorItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(2)

	selectorSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	selectorCursorStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	selectorTimeStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)

	selectorStatusStyle = lipgloss.NewStyle().
				Foreground(colorTextMute).
				MarginTop(1).
				Align(lipgloss.Center)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// FormatError returns a styled error message with additional context.
// It extracts details from the structured error types and appends a hint
// for the failures a local Ollama user can fix themselves.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case apierrors.IsConnectionError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is Ollama running? Try: ollama serve"))
	case errors.Is(err, apierrors.ErrModelNotFound):
		sb.WriteString(dimStyle.Render("\n  Hint: Model is not pulled locally. Try: ollama pull <model>"))
	case apierrors.IsTimeout(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The model took too long. Smaller models respond faster"))
	}

	return sb.String()
}

// PrintError prints a styled error message to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
