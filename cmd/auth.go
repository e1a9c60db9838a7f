// ABOUTME: Session commands: login, logout and whoami
// ABOUTME: Credentials come from flags or an interactive huh prompt

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/config"
	"github.com/markalston/academia-console/internal/recent"
	"github.com/markalston/academia-console/internal/session"
	"github.com/markalston/academia-console/internal/validate"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in against the backend and store the session token locally.

Without --password the credentials are asked for interactively. The
username defaults to the last one that signed in.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		req := session.LoginRequest{Username: loginUsername, Password: loginPassword}
		if req.Username == "" {
			if cfg, err := config.Load(v); err == nil {
				req.Username = recent.New(cfg.DataDir).Last()
			}
		}
		if req.Password == "" {
			if err := promptCredentials(&req); err != nil {
				exit(printError(os.Stdout, err))
			}
		}
		exit(runLogin(ctx, os.Stdout, req))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exit(runLogout(os.Stdout))
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and roles",
	Run: func(cmd *cobra.Command, args []string) {
		exit(runWhoami(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}

func promptCredentials(req *session.LoginRequest) error {
	check := func(fn func(string) validate.Result) func(string) error {
		return func(s string) error {
			if r := fn(s); !r.IsValid {
				return errors.New(r.Message)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Usuario").Value(&req.Username).Validate(check(validate.Username)),
			huh.NewInput().Title("Contraseña").EchoMode(huh.EchoModePassword).Value(&req.Password).Validate(check(validate.Password)),
		),
	).Run()
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, w io.Writer, req session.LoginRequest) int {
	return withApp(w, func(a *app.App) int {
		if err := a.Login(ctx, req); err != nil {
			return printError(w, err)
		}

		s := a.Session.Snapshot()
		if IsJSONOutput() {
			writeJSON(w, map[string]any{"session": s, "redirect": a.History.Last()})
			return exitOK
		}
		fmt.Fprintf(w, "Sesión iniciada como %s (%s)\n", s.Claims.Subject, roleName(s))
		if to := a.History.Last(); to != "" {
			fmt.Fprintf(w, "Destino: %s\n", to)
		}
		return exitOK
	})
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	return withApp(w, func(a *app.App) int {
		a.Logout()
		if IsJSONOutput() {
			writeJSON(w, map[string]any{"loggedOut": true, "redirect": a.History.Last()})
			return exitOK
		}
		fmt.Fprintln(w, "Sesión cerrada")
		return exitOK
	})
}

// runWhoami prints the current session and returns exit code
func runWhoami(w io.Writer) int {
	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}

		s := a.Session.Snapshot()
		if IsJSONOutput() {
			writeJSON(w, s)
			return exitOK
		}

		fields := []field{
			{"Usuario", s.Claims.Subject},
			{"Rol", roleName(s)},
		}
		if s.Claims.UserID != nil {
			fields = append(fields, field{"ID", fmt.Sprint(*s.Claims.UserID)})
		}
		if !s.Claims.ExpiresAt.IsZero() {
			fields = append(fields, field{"Expira", s.Claims.ExpiresAt.Local().Format(time.DateTime)})
		}
		fields = append(fields, field{"Inicio", session.LandingRoute(s.Claims)})
		renderFields(w, fields)
		return exitOK
	})
}

func roleName(s session.Session) string {
	switch {
	case s.IsAdmin():
		return "administrador"
	case s.IsProfessor():
		return "profesor"
	case s.IsStudent():
		return "alumno"
	}
	return "sin rol"
}
