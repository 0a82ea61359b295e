package render

import (
	"os"

	"github.com/Rithvik-katakamm/llama-utils/internal/config"
)

// OptionsFromConfig builds render options from user configuration.
// The GLAMOUR_STYLE environment variable takes precedence over the
// configured style.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	md := cfg.Markdown
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// OptionsFromConfigWithWidth builds options from config with a specific width.
func OptionsFromConfigWithWidth(cfg config.Config, width int) Options {
	opts := OptionsFromConfig(cfg)
	opts.Width = width
	return opts
}
