package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models installed on the Ollama server",
	RunE:  runModelsList,
}

func runModelsList(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig()
	client := deps.apiClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	installed, err := client.ListModels(ctx)
	if err != nil {
		// The server being down should not leave the user without a model
		// list; fall back to the known tags.
		if apierrors.IsConnectionError(err) {
			fmt.Fprintln(os.Stderr, "Could not reach the Ollama server. Start it with: ollama serve")
			fmt.Println("Commonly used models:")
			return printKnownModels()
		}
		return fmt.Errorf("failed to list models: %w", err)
	}

	if version, err := client.Version(ctx); err == nil {
		fmt.Printf("Ollama server %s at %s\n\n", version, client.BaseURL())
	}

	if len(installed) == 0 {
		fmt.Println("No models installed. Pull one with: ollama pull llama3.2")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED\tDEFAULT")
	_, _ = fmt.Fprintln(w, "----\t----\t--------\t-------")

	for _, m := range installed {
		isDefault := ""
		if m.Name == cfg.DefaultModel || m.Name == cfg.DefaultModel+":latest" {
			isDefault = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			m.Name, m.SizeHuman(), m.ModifiedAt.Format("2006-01-02 15:04"), isDefault)
	}

	return w.Flush()
}

func printKnownModels() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t-----------")

	for _, m := range models.AllModels() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", m.Name, m.Description)
	}

	return w.Flush()
}
