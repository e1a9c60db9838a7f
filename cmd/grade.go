// ABOUTME: Grade command for deliveries
// ABOUTME: The grade is checked locally before the request is sent

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/listings"
)

var (
	gradeValue    float64
	gradeComments string
)

var gradeCmd = &cobra.Command{
	Use:   "grade <delivery-id>",
	Short: "Grade a delivery (0-10)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		id, err := parseID(args[0])
		if err != nil {
			exit(printError(os.Stdout, err))
		}
		exit(runGrade(ctx, os.Stdout, id, gradeValue, gradeComments))
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)
	gradeCmd.Flags().Float64Var(&gradeValue, "grade", 0, "Grade between 0 and 10")
	gradeCmd.Flags().StringVar(&gradeComments, "comments", "", "Feedback for the student")
	_ = gradeCmd.MarkFlagRequired("grade")
}

// runGrade grades a delivery and returns exit code
func runGrade(ctx context.Context, w io.Writer, id int64, grade float64, comments string) int {
	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		if !a.Session.Snapshot().CanGradeDelivery() {
			return deny(w, "calificar entregas")
		}

		d, err := a.Services.Deliveries.Grade(ctx, id, grade, comments)
		if err != nil {
			return printError(w, err)
		}

		if IsJSONOutput() {
			writeJSON(w, d)
			return exitOK
		}
		fmt.Fprintf(w, "Entrega %d calificada: %s (%s)\n", d.ID, listings.Grade(d.Grade), d.Status)
		return exitOK
	})
}
