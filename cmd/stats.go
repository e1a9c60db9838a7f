// ABOUTME: Stats command showing dashboard counters
// ABOUTME: Student and professor totals are fetched concurrently by the facades

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/services"
	"github.com/markalston/academia-console/internal/tui/styles"
	"github.com/markalston/academia-console/internal/tui/widgets"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show student and professor counters",
	Long: `Show the dashboard counters the signed-in role may see.

Professors see student counters; administrators also see professor counters.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runStats(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type statsReport struct {
	Students   *services.StudentStatistics   `json:"students,omitempty"`
	Professors *services.ProfessorStatistics `json:"professors,omitempty"`
}

// runStats fetches the counters and returns exit code
func runStats(ctx context.Context, w io.Writer) int {
	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		s := a.Session.Snapshot()
		if !s.CanViewAllStudents() {
			return deny(w, "ver estadísticas")
		}

		var report statsReport
		st, err := a.Services.Students.Statistics(ctx)
		if err != nil {
			return printError(w, err)
		}
		report.Students = &st

		if s.CanViewAllProfessors() {
			pr, err := a.Services.Professors.Statistics(ctx)
			if err != nil {
				return printError(w, err)
			}
			report.Professors = &pr
		}

		if IsJSONOutput() {
			writeJSON(w, report)
			return exitOK
		}
		fmt.Fprintln(w, formatStatsHuman(report))
		return exitOK
	})
}

// formatStatsHuman formats the counters for human readability
func formatStatsHuman(r statsReport) string {
	const barWidth = 16
	var b strings.Builder
	if r.Students != nil {
		st := r.Students
		fmt.Fprintf(&b, "Alumnos:        %d\n", st.Total)
		fmt.Fprintf(&b, "  Matriculados: %d  %s\n", st.Enrolled, widgets.ShareBar(st.Enrolled, st.Total, barWidth, styles.Secondary))
		fmt.Fprintf(&b, "  Sin matrícula: %d  %s\n", st.NotEnrolled, widgets.ShareBar(st.NotEnrolled, st.Total, barWidth, styles.Muted))
	}
	if r.Professors != nil {
		pr := r.Professors
		fmt.Fprintf(&b, "Profesores:     %d\n", pr.Total)
		fmt.Fprintf(&b, "  Activos:      %d  %s\n", pr.Enabled, widgets.ShareBar(pr.Enabled, pr.Total, barWidth, styles.Secondary))
		fmt.Fprintf(&b, "  Inactivos:    %d  %s\n", pr.Disabled, widgets.ShareBar(pr.Disabled, pr.Total, barWidth, styles.Muted))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
