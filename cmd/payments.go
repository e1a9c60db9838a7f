// ABOUTME: Payment commands: recent payments and payment status
// ABOUTME: Restricted to roles that manage payments

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/listings"
	"github.com/markalston/academia-console/internal/services"
)

var recentLimit int

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Payment shortcuts",
}

var paymentsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent payments",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runPaymentsRecent(ctx, os.Stdout, recentLimit))
	},
}

var paymentsStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show the processing status of a payment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		id, err := parseID(args[0])
		if err != nil {
			exit(printError(os.Stdout, err))
		}
		exit(runPaymentStatus(ctx, os.Stdout, id))
	},
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsRecentCmd, paymentsStatusCmd)
	paymentsRecentCmd.Flags().IntVar(&recentLimit, "limit", services.DefaultRecentLimit, "Number of payments")
}

// runPaymentsRecent lists the latest payments and returns exit code
func runPaymentsRecent(ctx context.Context, w io.Writer, limit int) int {
	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		if !a.Session.Snapshot().CanManagePayments() {
			return deny(w, "gestionar pagos")
		}

		payments, err := a.Services.Payments.Recent(ctx, limit)
		if err != nil {
			return printError(w, err)
		}

		if IsJSONOutput() {
			writeJSON(w, payments)
			return exitOK
		}
		if len(payments) == 0 {
			fmt.Fprintln(w, "Sin pagos recientes")
			return exitOK
		}
		rows := make([][]string, 0, len(payments))
		for _, p := range payments {
			rows = append(rows, []string{
				fmt.Sprint(p.ID), fmt.Sprint(p.StudentID), listings.Money(p.Amount, p.Currency), p.Status, listings.Date(p.CreatedAt),
			})
		}
		renderTable(w, []string{"ID", "Alumno", "Importe", "Estado", "Fecha"}, rows)
		return exitOK
	})
}

// runPaymentStatus shows one payment's status and returns exit code
func runPaymentStatus(ctx context.Context, w io.Writer, id int64) int {
	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		if !a.Session.Snapshot().CanManagePayments() {
			return deny(w, "gestionar pagos")
		}

		st, err := a.Services.Payments.Status(ctx, id)
		if err != nil {
			return printError(w, err)
		}

		if IsJSONOutput() {
			writeJSON(w, st)
			return exitOK
		}
		fmt.Fprintf(w, "Pago %d: %s\n", st.ID, st.Status)
		return exitOK
	})
}
