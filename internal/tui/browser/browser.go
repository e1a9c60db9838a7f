// ABOUTME: Paginated listing screen backed by a bubbles table
// ABOUTME: Keeps pagination.State in sync with server metadata and key presses

package browser

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/pagination"
	"github.com/markalston/academia-console/internal/tui/icons"
	"github.com/markalston/academia-console/internal/tui/styles"
)

// DefaultFetchTimeout bounds a single page request.
const DefaultFetchTimeout = 15 * time.Second

// Fetcher loads one page and flattens it into table rows.
type Fetcher func(ctx context.Context, p pagination.Params) (pagination.Metadata, []table.Row, error)

// Listing describes one browsable collection.
type Listing struct {
	Entity   string
	Title    string
	Defaults pagination.Params
	Columns  []table.Column
	Fetch    Fetcher
}

// LoadedMsg carries the result of a page request.
type LoadedMsg struct {
	entity string
	seq    int
	meta   pagination.Metadata
	rows   []table.Row
	err    error
}

// BackMsg asks the parent to leave the listing.
type BackMsg struct{}

// Browser renders one listing at a time.
type Browser struct {
	listing    Listing
	state      *pagination.State
	table      table.Model
	meta       pagination.Metadata
	errInfo    *apperror.Info
	loading    bool
	seq        int
	width      int
	height     int
	lastUpdate time.Time
}

// New creates a browser positioned on the first page of l.
func New(l Listing, width, height int) *Browser {
	b := &Browser{
		listing: l,
		state:   pagination.NewState(l.Defaults),
		width:   width,
		height:  height,
	}
	b.table = table.New(
		table.WithColumns(l.Columns),
		table.WithFocused(true),
		table.WithHeight(b.tableHeight()),
		table.WithStyles(styles.TableStyles()),
	)
	return b
}

// Entity returns the listing's entity key.
func (b *Browser) Entity() string { return b.listing.Entity }

// Params returns the parameters of the current page.
func (b *Browser) Params() pagination.Params { return b.state.Params() }

// LastUpdate returns when rows were last replaced.
func (b *Browser) LastUpdate() time.Time { return b.lastUpdate }

// Loading reports whether a request is in flight.
func (b *Browser) Loading() bool { return b.loading }

// SetSize adapts the table to the available area.
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.table.SetHeight(b.tableHeight())
}

func (b *Browser) tableHeight() int {
	// title, blank, status line
	return max(3, b.height-4)
}

// Init implements tea.Model
func (b *Browser) Init() tea.Cmd {
	return b.load()
}

// load issues a request for the current params. Responses for superseded
// requests are dropped on arrival.
func (b *Browser) load() tea.Cmd {
	b.seq++
	b.loading = true
	seq, entity, params, fetch := b.seq, b.listing.Entity, b.state.Params(), b.listing.Fetch

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultFetchTimeout)
		defer cancel()
		meta, rows, err := fetch(ctx, params)
		return LoadedMsg{entity: entity, seq: seq, meta: meta, rows: rows, err: err}
	}
}

// Update implements tea.Model
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.entity != b.listing.Entity || msg.seq != b.seq {
			return b, nil
		}
		b.loading = false
		if msg.err != nil {
			info := apperror.Normalize(msg.err)
			b.errInfo = &info
			return b, nil
		}
		b.errInfo = nil
		b.meta = msg.meta
		b.state.UpdateFromResponse(msg.meta)
		b.table.SetRows(msg.rows)
		b.table.GotoTop()
		b.lastUpdate = time.Now()
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

func (b *Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		return b, func() tea.Msg { return BackMsg{} }
	case "r":
		return b, b.load()
	case "n", "right":
		if b.state.NextPage() {
			return b, b.load()
		}
		return b, nil
	case "p", "left":
		if b.state.PreviousPage() {
			return b, b.load()
		}
		return b, nil
	case "g", "home":
		if b.state.FirstPage() {
			return b, b.load()
		}
		return b, nil
	case "G", "end":
		if b.state.LastPage() {
			return b, b.load()
		}
		return b, nil
	case "s":
		p := b.state.Params()
		dir := pagination.Desc
		if p.SortDirection == pagination.Desc {
			dir = pagination.Asc
		}
		b.state.SetSort(p.SortBy, dir)
		return b, b.load()
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View implements tea.Model
func (b *Browser) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(b.listing.Title))
	sb.WriteString("\n")

	if b.errInfo != nil {
		sb.WriteString(b.viewError())
		return sb.String()
	}

	sb.WriteString(b.table.View())
	sb.WriteString("\n")
	sb.WriteString(b.statusLine())
	return sb.String()
}

func (b *Browser) viewError() string {
	e := b.errInfo
	line := icons.Critical.String() + " " + e.Message
	if e.Title != "" {
		line = icons.Critical.String() + " " + e.Title + ": " + e.Message
	}
	out := styles.StatusCritical.Render(line)
	for _, field := range slices.Sorted(maps.Keys(e.FieldErrors)) {
		out += "\n  " + styles.KeyStyle.Render(field) + " " + strings.Join(e.FieldErrors[field], ", ")
	}
	if e.CanRetry {
		out += "\n" + styles.Help.Render("r para reintentar")
	}
	return out
}

func (b *Browser) statusLine() string {
	if b.loading && b.lastUpdate.IsZero() {
		return styles.Help.Render(icons.Refresh.String() + " Cargando...")
	}

	d := pagination.Display(b.meta)
	p := b.state.Params()
	if d.TotalItems == 0 {
		return styles.Help.Render("Sin resultados")
	}

	status := fmt.Sprintf("Mostrando %d–%d de %d · página %d/%d · %s %s",
		d.StartItem, d.EndItem, d.TotalItems, d.CurrentPage, max(1, d.TotalPages),
		p.SortBy, p.SortDirection)
	if b.loading {
		status += " · " + icons.Refresh.String()
	}
	return styles.Help.Render(status)
}
