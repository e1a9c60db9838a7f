// ABOUTME: Enrollment commands: status, enroll, unenroll and toggle
// ABOUTME: Without --student the signed-in student acts on their own enrollment

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/app"
)

// Enrollment actions
const (
	actionStatus   = "status"
	actionEnroll   = "enroll"
	actionUnenroll = "unenroll"
	actionToggle   = "toggle"
)

var (
	enrollClassID   int64
	enrollStudentID int64
)

var enrollmentCmd = &cobra.Command{
	Use:   "enrollment",
	Short: "Inspect and change class enrollments",
}

func enrollmentAction(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signalContext()
			defer cancel()

			exit(runEnrollment(ctx, os.Stdout, action, enrollClassID, enrollStudentID))
		},
	}
}

func init() {
	rootCmd.AddCommand(enrollmentCmd)
	enrollmentCmd.PersistentFlags().Int64Var(&enrollClassID, "class", 0, "Class ID")
	enrollmentCmd.PersistentFlags().Int64Var(&enrollStudentID, "student", 0, "Student ID (administrators; defaults to yourself)")
	_ = enrollmentCmd.MarkPersistentFlagRequired("class")

	enrollmentCmd.AddCommand(
		enrollmentAction(actionStatus, "Show whether the student is enrolled"),
		enrollmentAction(actionEnroll, "Enroll the student in the class"),
		enrollmentAction(actionUnenroll, "Remove the student from the class"),
		enrollmentAction(actionToggle, "Enroll or unenroll depending on the current status"),
	)
}

// runEnrollment performs action and returns exit code
func runEnrollment(ctx context.Context, w io.Writer, action string, classID, studentID int64) int {
	if classID <= 0 {
		return printError(w, fmt.Errorf("--class must be a positive id"))
	}

	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		s := a.Session.Snapshot()
		self := studentID == 0
		switch {
		case self && !s.CanEnrollInClass():
			return deny(w, "matricularse; indica --student")
		case !self && !s.IsAdmin():
			return deny(w, "gestionar matrículas de otros alumnos")
		}

		svc := a.Services.Enrollment
		if action == actionStatus {
			var st *apiclient.EnrollmentStatus
			var err error
			if self {
				st, err = svc.MyStatus(ctx, classID)
			} else {
				st, err = svc.Status(ctx, classID, studentID)
			}
			if err != nil {
				return printError(w, err)
			}
			if IsJSONOutput() {
				writeJSON(w, st)
				return exitOK
			}
			state := "no matriculado"
			if st.Enrolled {
				state = "matriculado"
			}
			fmt.Fprintf(w, "Alumno %d en clase %d: %s\n", st.StudentID, st.ClassID, state)
			return exitOK
		}

		res, err := mutateEnrollment(ctx, a, action, self, classID, studentID)
		if err != nil {
			return printError(w, err)
		}
		if IsJSONOutput() {
			writeJSON(w, res)
			return exitOK
		}
		msg := res.Message
		if msg == "" {
			msg = "Operación completada"
		}
		fmt.Fprintln(w, msg)
		if !res.Success {
			return exitFailed
		}
		return exitOK
	})
}

func mutateEnrollment(ctx context.Context, a *app.App, action string, self bool, classID, studentID int64) (*apiclient.EnrollmentResult, error) {
	svc := a.Services.Enrollment
	if !self {
		switch action {
		case actionEnroll:
			return svc.Enroll(ctx, studentID, classID)
		case actionUnenroll:
			return svc.Unenroll(ctx, studentID, classID)
		default:
			return svc.Toggle(ctx, studentID, classID)
		}
	}

	if action == actionToggle {
		st, err := svc.MyStatus(ctx, classID)
		if err != nil {
			return nil, err
		}
		action = actionEnroll
		if st.Enrolled {
			action = actionUnenroll
		}
	}
	if action == actionEnroll {
		return svc.EnrollMe(ctx, classID)
	}
	return svc.UnenrollMe(ctx, classID)
}
