package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/installmart/internal/api"
	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/config"
	"github.com/Veraticus/installmart/internal/fetch"
	"github.com/Veraticus/installmart/internal/storage"
)

// env is what a command needs to reach the backend and local storage.
type env struct {
	settings *config.Settings
	store    *storage.SQLiteStorage
	client   *api.Client
}

// openEnv loads settings, opens local storage and builds an authenticated client.
// The caller must call close.
func openEnv(ctx context.Context) (*env, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, settings.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	client, err := api.NewClient(api.Options{
		BaseURL: settings.BaseURL,
		Timeout: settings.Timeout,
		Tokens:  store,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &env{settings: settings, store: store, client: client}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// withEnv runs fn with an open env and a spinner that stops before fn
// writes anything.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()
	return fn(cmd.Context(), e)
}

// loading shows a spinner on stderr until the returned func is called.
func loading(cmd *cobra.Command, what string) func() {
	s := cli.StartSpinner(cmd.ErrOrStderr(), what)
	return s.Stop
}

// warnDegraded prints a warning when a list fetch failed, so an empty table is
// not mistaken for an empty catalog.
func warnDegraded[T any](w io.Writer, what string, res fetch.Result[T]) {
	if !res.Degraded {
		return
	}
	fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Could not load %s: %v", what, res.Err)))
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)

// table writes aligned rows with a styled header.
type table struct {
	w    *tabwriter.Writer
	cols int
}

func newTable(out io.Writer, headers ...string) *table {
	t := &table{
		w:    tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		cols: len(headers),
	}
	styled := make([]string, len(headers))
	rule := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		rule[i] = strings.Repeat("─", max(len(h), 4))
	}
	t.row(styled...)
	t.row(rule...)
	return t
}

func (t *table) row(cells ...string) {
	if _, err := fmt.Fprintln(t.w, strings.Join(cells, "\t")); err != nil {
		slog.Error("failed to write table row", "error", err)
	}
}

func (t *table) flush() {
	if err := t.w.Flush(); err != nil {
		slog.Error("failed to flush table writer", "error", err)
	}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// orDash renders empty values as a dash.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// field prints a "Label: value" line, skipping empty values.
func field(w io.Writer, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", cli.BoldStyle.Render(label+":"), value)
}

// list prints a labelled bullet list, skipping empty lists.
func list(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, cli.BoldStyle.Render(label+":"))
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}
