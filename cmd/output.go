// ABOUTME: Shared plumbing for commands: app construction, exit codes and rendering
// ABOUTME: Human output uses lipgloss tables; --json switches every command to JSON

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/config"
	"github.com/markalston/academia-console/internal/tui/styles"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1 // the command ran but the answer is negative (e.g. invalid value)
	exitError  = 2 // connectivity, auth, permission or input errors
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func exit(code int) {
	if code != exitOK {
		flushLogs()
		os.Exit(code)
	}
}

// newApp builds the application context from the bound configuration.
func newApp() (*app.App, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.WithLogger(slog.Default()))
}

// withApp runs fn with a fresh application context and closes it afterwards.
func withApp(w io.Writer, fn func(a *app.App) int) int {
	a, err := newApp()
	if err != nil {
		return printError(w, err)
	}
	defer a.Close()
	return fn(a)
}

// requireSession prints a hint and returns false when nobody is signed in.
func requireSession(w io.Writer, a *app.App) bool {
	if a.Session.IsAuthenticated() {
		return true
	}
	printError(w, errors.New("no hay sesión iniciada; ejecuta 'academia login'"))
	return false
}

func deny(w io.Writer, action string) int {
	return printError(w, fmt.Errorf("tu rol no permite %s", action))
}

// printError renders err and returns exitError. API failures are shown with
// their normalized message; anything else is printed as is.
func printError(w io.Writer, err error) int {
	var ae *apperror.Error
	var n *apperror.Normalized
	if !errors.As(err, &ae) && !errors.As(err, &n) {
		if IsJSONOutput() {
			writeJSON(w, map[string]any{"error": map[string]string{"message": err.Error()}})
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return exitError
	}

	info := apperror.Normalize(err)
	if IsJSONOutput() {
		writeJSON(w, map[string]any{"error": info})
		return exitError
	}

	fmt.Fprintf(w, "Error (%s): %s\n", info.Title, info.Message)
	fields := make([]string, 0, len(info.FieldErrors))
	for f := range info.FieldErrors {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, strings.Join(info.FieldErrors[f], ", "))
	}
	if info.CanRetry {
		fmt.Fprintln(w, "Puedes reintentar la operación.")
	}
	return exitError
}

func writeJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

// field is one "label: value" line of a detail view.
type field struct {
	label string
	value string
}

func renderFields(w io.Writer, fields []field) {
	width := 0
	for _, f := range fields {
		width = max(width, len([]rune(f.label)))
	}
	for _, f := range fields {
		pad := strings.Repeat(" ", width-len([]rune(f.label)))
		fmt.Fprintf(w, "%s:%s %s\n", f.label, pad, f.value)
	}
}
