package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
	"github.com/Rithvik-katakamm/llama-utils/internal/render"
	"github.com/Rithvik-katakamm/llama-utils/internal/session"
)

// Renderer is the console output surface for a chat. Implementations decide
// how much decoration to apply; callers never branch on the visual mode.
type Renderer interface {
	// Banner prints the welcome panel with model, project and session count.
	Banner(model, project string, sessions int)
	// ChatStarted announces the interactive loop.
	ChatStarted()
	// History replays recent messages when resuming a session.
	History(messages []models.Message)
	// Prompt returns the input prompt string handed to readline.
	Prompt() string
	// ReplyStart is called before the first delta of a reply.
	ReplyStart()
	// ReplyDelta is called for each streamed content fragment.
	ReplyDelta(delta string)
	// ReplyEnd is called with the assembled reply once the stream finishes.
	ReplyEnd(full string)
	// ReplyAborted is called instead of ReplyEnd when the stream fails.
	ReplyAborted()
	Info(msg string)
	Success(msg string)
	Error(err error)
	Help(commands [][2]string)
	Stats(st session.Stats)
	Matches(query string, matches []session.Match)
}

// ResolveMode maps the configured visual mode to a concrete one. Auto picks
// rich on a terminal and plain otherwise, matching the original behavior.
func ResolveMode(mode string) string {
	if mode == config.VisualAuto || mode == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return config.VisualRich
		}
		return config.VisualPlain
	}
	return mode
}

// NewRenderer builds the renderer for the configured visual mode. Unknown
// modes fall back to plain.
func NewRenderer(cfg config.Config) Renderer {
	switch ResolveMode(cfg.VisualMode) {
	case config.VisualRich:
		return newRichRenderer(os.Stdout, terminalWidth(), render.OptionsFromConfig(cfg))
	case config.VisualSilent:
		return newSilentRenderer(os.Stdout)
	default:
		return newPlainRenderer(os.Stdout)
	}
}

// terminalWidth returns the terminal width or a default value.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncateContent cuts history replay lines the way the original did.
func truncateContent(content string, limit int) string {
	if len(content) > limit {
		return content[:limit] + "..."
	}
	return content
}

// titleRole capitalizes a role name for display.
func titleRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func roleIcon(role string) string {
	switch role {
	case models.RoleUser:
		return "👤"
	case models.RoleAssistant:
		return "🤖"
	case models.RoleSystem:
		return "🔧"
	}
	return "•"
}

// richRenderer is the lipgloss + glamour surface used on a TTY.
type richRenderer struct {
	out   io.Writer
	width int
	opts  render.Options

	spin  *Spinner
	chars int
}

func newRichRenderer(out io.Writer, width int, opts render.Options) *richRenderer {
	bubbleWidth := width - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	return &richRenderer{out: out, width: bubbleWidth, opts: opts}
}

func (r *richRenderer) Banner(model, project string, sessions int) {
	if project == "" {
		project = "Default"
	}
	lines := []string{
		titleStyle.Render("🤖 Ollama Chat"),
		subtitleStyle.Render(fmt.Sprintf("Model: %s", model)),
		subtitleStyle.Render(fmt.Sprintf("Project: %s", project)),
		subtitleStyle.Render(fmt.Sprintf("Sessions: %d", sessions)),
	}
	panel := headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	fmt.Fprintln(r.out, panel)
}

func (r *richRenderer) ChatStarted() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, titleStyle.Render("💬 Interactive Chat Started"))
	fmt.Fprintln(r.out, hintStyle.Render("Type 'quit' to exit, 'help' for commands"))
	fmt.Fprintln(r.out)
}

func (r *richRenderer) History(messages []models.Message) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintln(r.out, hintStyle.Render("--- Recent History ---"))
	for _, msg := range messages {
		label := subtitleStyle
		switch msg.Role {
		case models.RoleUser:
			label = userLabelStyle
		case models.RoleAssistant:
			label = assistantLabelStyle
		}
		content := truncateContent(msg.Content, 100)
		fmt.Fprintf(r.out, "%s %s\n", label.Render(roleIcon(msg.Role)+" "+titleRole(msg.Role)+":"), content)
	}
	fmt.Fprintln(r.out, hintStyle.Render("--- End History ---"))
	fmt.Fprintln(r.out)
}

func (r *richRenderer) Prompt() string {
	return userLabelStyle.Render("👤 You") + ": "
}

func (r *richRenderer) ReplyStart() {
	r.chars = 0
	r.spin = NewSpinner("Thinking")
	r.spin.Start()
}

func (r *richRenderer) ReplyDelta(delta string) {
	if r.spin == nil {
		return
	}
	r.chars += len(delta)
	r.spin.SetMessage(fmt.Sprintf("Generating (%d chars)", r.chars))
}

func (r *richRenderer) ReplyEnd(full string) {
	if r.spin != nil {
		r.spin.Stop()
		r.spin = nil
	}

	label := assistantLabelStyle.Render("🤖 Assistant")
	fmt.Fprintln(r.out, label)

	contentWidth := r.width - 4
	rendered, err := render.Markdown(full, r.opts.WithWidth(contentWidth))
	if err != nil {
		rendered = full
	}
	rendered = strings.TrimRight(rendered, "\n")

	bubble := replyBubbleStyle.Width(r.width).Render(rendered)
	fmt.Fprintln(r.out, bubble)
}

func (r *richRenderer) ReplyAborted() {
	if r.spin != nil {
		r.spin.StopWithError()
		r.spin = nil
	}
}

func (r *richRenderer) Info(msg string) {
	fmt.Fprintln(r.out, subtitleStyle.Render(msg))
}

func (r *richRenderer) Success(msg string) {
	fmt.Fprintln(r.out, successStyle.Render("✅ Success: "+msg))
}

func (r *richRenderer) Error(err error) {
	fmt.Fprintln(os.Stderr, FormatError(err))
}

func (r *richRenderer) Help(commands [][2]string) {
	var sb strings.Builder
	sb.WriteString(statKeyStyle.Render("Available Commands:"))
	sb.WriteString("\n")
	for _, c := range commands {
		sb.WriteString(fmt.Sprintf("• %s - %s\n", successStyle.Render(c[0]), c[1]))
	}
	sb.WriteString(hintStyle.Render("Just type your message to chat!"))
	fmt.Fprintln(r.out, headerStyle.Render(sb.String()))
}

func (r *richRenderer) Stats(st session.Stats) {
	rows := []string{
		statKeyStyle.Render("Session Statistics:"),
		fmt.Sprintf("• Total Messages: %s", statValueStyle.Render(fmt.Sprintf("%d", st.TotalMessages))),
		fmt.Sprintf("• Your Messages: %s", statValueStyle.Render(fmt.Sprintf("%d", st.UserMessages))),
		fmt.Sprintf("• AI Responses: %s", statValueStyle.Render(fmt.Sprintf("%d", st.AssistantMessages))),
		fmt.Sprintf("• System Messages: %s", statValueStyle.Render(fmt.Sprintf("%d", st.SystemMessages))),
		fmt.Sprintf("• Total Characters: %s", statValueStyle.Render(humanize.Comma(int64(st.TotalCharacters)))),
		fmt.Sprintf("• Context Items: %s", statValueStyle.Render(fmt.Sprintf("%d", st.ContextItems))),
	}
	fmt.Fprintln(r.out, headerStyle.Render(strings.Join(rows, "\n")))
}

func (r *richRenderer) Matches(query string, matches []session.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(r.out, warningStyle.Render("No results found for: "+query))
		return
	}

	var sb strings.Builder
	sb.WriteString(statKeyStyle.Render(fmt.Sprintf("Search Results for: %s", query)))
	for i, m := range matches {
		if i >= 10 {
			break
		}
		sb.WriteString(fmt.Sprintf("\n%d. [%s] %s", i+1, statValueStyle.Render(m.Role), m.Snippet))
	}
	fmt.Fprintln(r.out, headerStyle.Render(sb.String()))
}

// plainRenderer mirrors the original's fallback strings. Everything goes
// out unstyled so pipes and dumb terminals stay readable.
type plainRenderer struct {
	out io.Writer
}

func newPlainRenderer(out io.Writer) *plainRenderer {
	return &plainRenderer{out: out}
}

func (r *plainRenderer) Banner(model, project string, sessions int) {
	fmt.Fprintf(r.out, "--- Ollama Chat (Model: %s) ---\n", model)
	if project != "" {
		fmt.Fprintf(r.out, "Project: %s\n", project)
	}
}

func (r *plainRenderer) ChatStarted() {
	fmt.Fprintln(r.out, "\n--- Interactive Chat Started ---")
	fmt.Fprintln(r.out, "Type 'quit' to exit, 'help' for commands")
	fmt.Fprintln(r.out)
}

func (r *plainRenderer) History(messages []models.Message) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintln(r.out, "--- Recent History ---")
	for _, msg := range messages {
		fmt.Fprintf(r.out, "%s: %s\n", titleRole(msg.Role), truncateContent(msg.Content, 100))
	}
	fmt.Fprintln(r.out, "--- End History ---")
	fmt.Fprintln(r.out)
}

func (r *plainRenderer) Prompt() string {
	return "You: "
}

func (r *plainRenderer) ReplyStart() {
	fmt.Fprint(r.out, "Assistant: ")
}

func (r *plainRenderer) ReplyDelta(delta string) {
	fmt.Fprint(r.out, delta)
}

func (r *plainRenderer) ReplyEnd(full string) {
	fmt.Fprintln(r.out)
}

func (r *plainRenderer) ReplyAborted() {
	fmt.Fprintln(r.out)
}

func (r *plainRenderer) Info(msg string) {
	fmt.Fprintln(r.out, msg)
}

func (r *plainRenderer) Success(msg string) {
	fmt.Fprintf(r.out, "[Success] %s\n", msg)
}

func (r *plainRenderer) Error(err error) {
	fmt.Fprintf(os.Stderr, "[Error] %v\n", err)
}

func (r *plainRenderer) Help(commands [][2]string) {
	fmt.Fprintln(r.out, "\nAvailable Commands:")
	for _, c := range commands {
		fmt.Fprintf(r.out, "• %s - %s\n", c[0], c[1])
	}
}

func (r *plainRenderer) Stats(st session.Stats) {
	fmt.Fprintln(r.out, "\nSession Statistics:")
	fmt.Fprintf(r.out, "• Total Messages: %d\n", st.TotalMessages)
	fmt.Fprintf(r.out, "• Your Messages: %d\n", st.UserMessages)
	fmt.Fprintf(r.out, "• AI Responses: %d\n", st.AssistantMessages)
	fmt.Fprintf(r.out, "• Context Items: %d\n", st.ContextItems)
}

func (r *plainRenderer) Matches(query string, matches []session.Match) {
	if len(matches) == 0 {
		fmt.Fprintf(r.out, "No results found for: %s\n", query)
		return
	}
	fmt.Fprintf(r.out, "\nSearch Results for: %s\n", query)
	for i, m := range matches {
		if i >= 10 {
			break
		}
		fmt.Fprintf(r.out, "%d. [%s] %s\n", i+1, m.Role, m.Snippet)
	}
}

// silentRenderer suppresses all decoration. Replies and command output
// still print raw so the mode stays usable in scripts; errors go to stderr.
type silentRenderer struct {
	out io.Writer
}

func newSilentRenderer(out io.Writer) *silentRenderer {
	return &silentRenderer{out: out}
}

func (r *silentRenderer) Banner(model, project string, sessions int) {}

func (r *silentRenderer) ChatStarted() {}

func (r *silentRenderer) History(messages []models.Message) {}

func (r *silentRenderer) Prompt() string { return "" }

func (r *silentRenderer) ReplyStart() {}

func (r *silentRenderer) ReplyDelta(delta string) {}

func (r *silentRenderer) ReplyEnd(full string) {
	fmt.Fprintln(r.out, full)
}

func (r *silentRenderer) ReplyAborted() {}

func (r *silentRenderer) Info(msg string) {}

func (r *silentRenderer) Success(msg string) {}

func (r *silentRenderer) Error(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
}

func (r *silentRenderer) Help(commands [][2]string) {}

func (r *silentRenderer) Stats(st session.Stats) {
	fmt.Fprintf(r.out, "messages=%d user=%d assistant=%d context=%d\n",
		st.TotalMessages, st.UserMessages, st.AssistantMessages, st.ContextItems)
}

func (r *silentRenderer) Matches(query string, matches []session.Match) {
	for _, m := range matches {
		fmt.Fprintf(r.out, "[%s] %s\n", m.Role, m.Snippet)
	}
}
