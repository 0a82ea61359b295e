package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Rithvik-katakamm/llama-utils/internal/models"
	"github.com/Rithvik-katakamm/llama-utils/internal/session"
)

var (
	exportFormatFlag string
	exportOutputFlag string
	clearForceFlag   bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved chat sessions",
	Long: `List, inspect, search, export and delete the saved sessions of the active project.

` + session.ListAliases(),
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions in the active project",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search message content across all sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionsSearch,
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <ref>",
	Short: "Export a session as markdown, JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsExport,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <ref>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a session file into the active project",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsImport,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions in the active project",
	RunE:  runSessionsClear,
}

func init() {
	sessionsExportCmd.Flags().StringVar(&exportFormatFlag, "format", "md", "Export format (md, json, yaml)")
	sessionsExportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "Output file (default stdout)")
	sessionsClearCmd.Flags().BoolVar(&clearForceFlag, "force", false, "Skip the confirmation prompt")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsSearchCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsImportCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)
}

// openStore opens the session store for the active project.
func openStore() (*session.Store, error) {
	cfg := effectiveConfig()
	return session.NewStore(cfg.ConversationsDir, cfg.DefaultProject)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	descriptors, err := store.ListWithMeta()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(descriptors) == 0 {
		fmt.Printf("No sessions found in project %s.\n", store.Project())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tNAME\tMESSAGES\tMODEL\tMODIFIED")
	_, _ = fmt.Fprintln(w, "-\t----\t--------\t-----\t--------")

	for i, d := range descriptors {
		name := truncate(strings.TrimSuffix(d.Filename, ".json"), 40)
		modified := session.FormatRelativeTime(d.Meta.LastModified)
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			i+1, name, d.Meta.MessageCount, d.Meta.Model, modified)
	}

	return w.Flush()
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	sess, err := session.NewResolver(store).ResolveAndLoad(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", sess.Filename())
	fmt.Printf("Model: %s\n", sess.Model)
	fmt.Printf("Project: %s\n", sess.Project)
	fmt.Printf("Created: %s\n", sess.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Messages: %d\n", len(sess.Messages))
	if len(sess.Context) > 0 {
		fmt.Printf("Context items: %d\n", len(sess.Context))
	}
	fmt.Println()

	for i, msg := range sess.Messages {
		role := "You"
		switch msg.Role {
		case models.RoleAssistant:
			role = "Assistant"
		case models.RoleSystem:
			role = "System"
		}
		fmt.Printf("[%d] %s:\n", i+1, role)
		fmt.Printf("  %s\n\n", truncate(msg.Content, 500))
	}

	return nil
}

func runSessionsSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results, err := store.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results found for: %s\n", query)
		return nil
	}

	total := 0
	for _, fm := range results {
		fmt.Printf("%s (%d matches)\n", fm.Filename, len(fm.Matches))
		for _, m := range fm.Matches {
			fmt.Printf("  [%s] %s\n", m.Role, m.Snippet)
		}
		fmt.Println()
		total += len(fm.Matches)
	}
	fmt.Printf("%d matches in %d sessions\n", total, len(results))

	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	sess, err := session.NewResolver(store).ResolveAndLoad(args[0])
	if err != nil {
		return err
	}

	exporter, err := session.NewExporter(exportFormatFlag)
	if err != nil {
		return err
	}

	if exportOutputFlag == "" {
		return exporter.Export(sess, os.Stdout)
	}

	f, err := os.Create(exportOutputFlag)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := exporter.Export(sess, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %s to %s\n", sess.Filename(), exportOutputFlag)
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	filename, err := session.NewResolver(store).Resolve(args[0])
	if err != nil {
		return err
	}

	if err := store.Delete(filename); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	fmt.Printf("Deleted session: %s\n", filename)
	return nil
}

func runSessionsImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	sess, err := store.Import(args[0])
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}

	fmt.Printf("Imported %d messages into %s\n", len(sess.Messages), sess.Filename())
	return nil
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if !clearForceFlag {
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("No sessions found in project %s.\n", store.Project())
			return nil
		}

		fmt.Printf("Delete all %d sessions in project %s? [y/N]: ", len(names), store.Project())
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	fmt.Println("All sessions deleted.")
	return nil
}

// truncate shortens a string to maxLen, marking the cut with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen] + "..."
}
