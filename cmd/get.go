// ABOUTME: Get and delete commands for single records
// ABOUTME: Both dispatch on the entity name to the matching service facade

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/listings"
	"github.com/markalston/academia-console/internal/services"
	"github.com/markalston/academia-console/internal/session"
)

var deleteYes bool

var getCmd = &cobra.Command{
	Use:       "get <entity> <id>",
	Short:     "Show one record",
	Args:      cobra.ExactArgs(2),
	ValidArgs: listings.Entities,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		id, err := parseID(args[1])
		if err != nil {
			exit(printError(os.Stdout, err))
		}
		exit(runGet(ctx, os.Stdout, args[0], id))
	},
}

var deleteCmd = &cobra.Command{
	Use:       "delete <entity> <id>",
	Short:     "Delete one record (administrators only)",
	Args:      cobra.ExactArgs(2),
	ValidArgs: listings.Entities,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		id, err := parseID(args[1])
		if err != nil {
			exit(printError(os.Stdout, err))
		}
		if !deleteYes {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("¿Eliminar %s %d?", args[0], id)).
				Affirmative("Eliminar").
				Negative("Cancelar").
				Value(&confirmed).
				Run()
			if err != nil || !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelado")
				exit(exitFailed)
			}
		}
		exit(runDelete(ctx, os.Stdout, args[0], id))
	},
}

func init() {
	rootCmd.AddCommand(getCmd, deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

func getter(svc *services.Services, entity string) func(context.Context, int64) (any, error) {
	wrap := func(v any, err error) (any, error) { return v, err }
	switch entity {
	case session.EntityStudents:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Students.Get(ctx, id)) }
	case session.EntityProfessors:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Professors.Get(ctx, id)) }
	case session.EntityClasses:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Classes.Get(ctx, id)) }
	case session.EntityExercises:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Exercises.Get(ctx, id)) }
	case session.EntityDeliveries:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Deliveries.Get(ctx, id)) }
	case session.EntityMaterials:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Materials.Get(ctx, id)) }
	case session.EntityPayments:
		return func(ctx context.Context, id int64) (any, error) { return wrap(svc.Payments.Get(ctx, id)) }
	}
	return nil
}

func deleter(svc *services.Services, entity string) func(context.Context, int64) error {
	switch entity {
	case session.EntityStudents:
		return svc.Students.Delete
	case session.EntityProfessors:
		return svc.Professors.Delete
	case session.EntityClasses:
		return svc.Classes.Delete
	case session.EntityExercises:
		return svc.Exercises.Delete
	case session.EntityDeliveries:
		return svc.Deliveries.Delete
	case session.EntityMaterials:
		return svc.Materials.Delete
	case session.EntityPayments:
		return svc.Payments.Delete
	}
	return nil
}

// runGet fetches one record and returns exit code
func runGet(ctx context.Context, w io.Writer, entity string, id int64) int {
	if !listings.Known(entity) {
		return printError(w, fmt.Errorf("unknown entity %q", entity))
	}

	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}

		record, err := getter(a.Services, entity)(ctx, id)
		if err != nil {
			return printError(w, err)
		}

		if IsJSONOutput() {
			writeJSON(w, record)
			return exitOK
		}
		renderFields(w, recordFields(record))
		return exitOK
	})
}

// runDelete removes one record and returns exit code
func runDelete(ctx context.Context, w io.Writer, entity string, id int64) int {
	if !listings.Known(entity) {
		return printError(w, fmt.Errorf("unknown entity %q", entity))
	}

	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		if !a.Session.Snapshot().CanDelete(entity) {
			return deny(w, "eliminar "+entity)
		}

		if err := deleter(a.Services, entity)(ctx, id); err != nil {
			return printError(w, err)
		}

		if IsJSONOutput() {
			writeJSON(w, map[string]any{"deleted": true, "entity": entity, "id": id})
			return exitOK
		}
		fmt.Fprintf(w, "Eliminado %s %d\n", entity, id)
		return exitOK
	})
}

// recordFields flattens a record's JSON form into sorted label/value lines.
func recordFields(record any) []field {
	data, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, field{k, formatValue(m[k])})
	}
	return fields
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case bool:
		return listings.YesNo(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
