// ABOUTME: List command for every paginated collection
// ABOUTME: Normalizes pagination input, reports corrections and renders a page

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/listings"
	"github.com/markalston/academia-console/internal/pagination"
)

// listOptions carries the list flags. Pagination values are kept as raw
// query parameters so they go through the same normalization as a URL.
type listOptions struct {
	query    url.Values
	filter   listings.Filter
	enrolled string
	enabled  string
}

var (
	listPage     int
	listSize     int
	listSort     string
	listDir      string
	listRawQuery string
	listFilter   listings.Filter
	listEnrolled string
	listEnabled  string
)

var listCmd = &cobra.Command{
	Use:   "list <entity>",
	Short: "List a paginated collection",
	Long: `List one page of a collection.

Entities: ` + strings.Join(listings.Entities, ", ") + `

Pagination values outside the allowed range are corrected and the canonical
query is reported, e.g. --size 500 becomes size=100.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: listings.Entities,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		q, err := url.ParseQuery(strings.TrimPrefix(listRawQuery, "?"))
		if err != nil {
			exit(printError(os.Stdout, fmt.Errorf("--query: %w", err)))
		}
		flags := cmd.Flags()
		if flags.Changed("page") {
			q.Set(pagination.KeyPage, strconv.Itoa(listPage))
		}
		if flags.Changed("size") {
			q.Set(pagination.KeySize, strconv.Itoa(listSize))
		}
		if flags.Changed("sort") {
			q.Set(pagination.KeySortBy, listSort)
		}
		if flags.Changed("dir") {
			q.Set(pagination.KeySortDirection, listDir)
		}

		exit(runList(ctx, os.Stdout, args[0], listOptions{
			query:    q,
			filter:   listFilter,
			enrolled: listEnrolled,
			enabled:  listEnabled,
		}))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	f := listCmd.Flags()
	f.IntVar(&listPage, "page", 0, "Page number, 0-based")
	f.IntVar(&listSize, "size", pagination.DefaultSize, "Page size (1-100)")
	f.StringVar(&listSort, "sort", "", "Sort field (listing default when omitted)")
	f.StringVar(&listDir, "dir", "", "Sort direction: ASC or DESC")
	f.StringVar(&listRawQuery, "query", "", "Raw listing query, e.g. 'page=2&size=50&sortBy=email'")
	f.StringVarP(&listFilter.Query, "search", "q", "", "Free-text search")
	f.StringVar(&listFilter.Status, "status", "", "Status filter (exercises, deliveries, payments)")
	f.Int64Var(&listFilter.ClassID, "class", 0, "Class ID filter")
	f.Int64Var(&listFilter.StudentID, "student", 0, "Student ID filter")
	f.Int64Var(&listFilter.ExerciseID, "exercise", 0, "Exercise ID filter")
	f.StringVar(&listEnrolled, "enrolled", "", "Enrollment filter: true or false")
	f.StringVar(&listEnabled, "enabled", "", "Account filter: true or false")
}

func parseTriState(name, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be true or false, got %q", name, raw)
	}
	return &b, nil
}

// runList fetches one page and returns exit code
func runList(ctx context.Context, w io.Writer, entity string, opts listOptions) int {
	if !listings.Known(entity) {
		return printError(w, fmt.Errorf("unknown entity %q (expected one of %s)", entity, strings.Join(listings.Entities, ", ")))
	}

	filter := opts.filter
	var err error
	if filter.Enrolled, err = parseTriState("enrolled", opts.enrolled); err != nil {
		return printError(w, err)
	}
	if filter.Enabled, err = parseTriState("enabled", opts.enabled); err != nil {
		return printError(w, err)
	}

	return withApp(w, func(a *app.App) int {
		if !requireSession(w, a) {
			return exitError
		}
		if !a.Session.Snapshot().CanList(entity) {
			return deny(w, "consultar "+entity)
		}

		l, err := listings.For(a.Services, entity, filter)
		if err != nil {
			return printError(w, err)
		}

		params, corrected := pagination.ParseQueryWithDefaults(opts.query, l.Defaults)
		canonical := ""
		if corrected {
			canonical, _, _ = pagination.CanonicalizeWithDefaults("?"+opts.query.Encode(), l.Defaults)
		}

		meta, rows, err := l.Fetch(ctx, params)
		if err != nil {
			return printError(w, err)
		}

		if IsJSONOutput() {
			out := map[string]any{
				"entity":     entity,
				"params":     params,
				"pagination": pagination.Display(meta),
				"columns":    l.Headers(),
				"rows":       rows,
			}
			if corrected {
				out["canonicalQuery"] = canonical
			}
			writeJSON(w, out)
			return exitOK
		}

		if corrected {
			fmt.Fprintf(w, "Parámetros corregidos: %s\n", canonical)
		}
		fmt.Fprintln(w, l.Title)
		if len(rows) == 0 {
			fmt.Fprintln(w, "Sin resultados")
			return exitOK
		}
		renderTable(w, l.Headers(), rows)

		d := pagination.Display(meta)
		fmt.Fprintf(w, "Mostrando %d–%d de %d · página %d/%d · %s %s\n",
			d.StartItem, d.EndItem, d.TotalItems, d.CurrentPage, max(1, d.TotalPages),
			params.SortBy, params.SortDirection)
		return exitOK
	})
}
