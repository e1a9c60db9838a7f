// ABOUTME: Table-shaped views of every paginated collection
// ABOUTME: Shared by the CLI list commands and the TUI browser

package listings

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/pagination"
	"github.com/markalston/academia-console/internal/services"
	"github.com/markalston/academia-console/internal/session"
)

// Column is a table heading with a suggested width.
type Column struct {
	Title string
	Width int
}

// Fetcher loads one page flattened to string cells.
type Fetcher func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error)

// Listing binds an entity to its columns and loader.
type Listing struct {
	Entity   string
	Title    string
	Defaults pagination.Params
	Columns  []Column
	Fetch    Fetcher
}

// Filter is the union of list filters. Fields an entity does not
// support are ignored.
type Filter struct {
	Query      string
	Status     string
	ClassID    int64
	StudentID  int64
	ExerciseID int64
	Enrolled   *bool
	Enabled    *bool
}

// Entities lists every browsable entity in menu order.
var Entities = []string{
	session.EntityStudents,
	session.EntityProfessors,
	session.EntityClasses,
	session.EntityExercises,
	session.EntityDeliveries,
	session.EntityMaterials,
	session.EntityPayments,
}

// Known reports whether entity has a listing.
func Known(entity string) bool { return slices.Contains(Entities, entity) }

// For builds the listing for entity.
func For(svc *services.Services, entity string, f Filter) (Listing, error) {
	switch entity {
	case session.EntityStudents:
		return Listing{
			Entity:   entity,
			Title:    "Alumnos",
			Defaults: pagination.StudentDefaults,
			Columns:  []Column{{"ID", 6}, {"Usuario", 16}, {"Nombre", 28}, {"DNI", 10}, {"Email", 28}, {"Matriculado", 11}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Students.List(ctx, apiclient.StudentFilters{
					Q: f.Query, Enrolled: f.Enrolled, Enabled: f.Enabled,
				}, p)
				return rows(page, err, func(s apiclient.Student) []string {
					return []string{id(s.ID), s.Username, s.FirstName + " " + s.LastName, s.DNI, s.Email, YesNo(s.Enrolled)}
				})
			},
		}, nil

	case session.EntityProfessors:
		return Listing{
			Entity:   entity,
			Title:    "Profesores",
			Defaults: pagination.ProfessorDefaults,
			Columns:  []Column{{"ID", 6}, {"Usuario", 16}, {"Nombre", 28}, {"Email", 28}, {"Activo", 6}, {"Clases", 6}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Professors.List(ctx, apiclient.ProfessorFilters{
					Q: f.Query, Enabled: f.Enabled, ClassID: f.ClassID,
				}, p)
				return rows(page, err, func(pr apiclient.Professor) []string {
					return []string{id(pr.ID), pr.Username, pr.FirstName + " " + pr.LastName, pr.Email, YesNo(pr.Enabled), strconv.Itoa(len(pr.ClassIDs))}
				})
			},
		}, nil

	case session.EntityClasses:
		return Listing{
			Entity:   entity,
			Title:    "Clases",
			Defaults: pagination.ClassDefaults,
			Columns:  []Column{{"ID", 6}, {"Título", 30}, {"Tipo", 9}, {"Nivel", 12}, {"Precio", 10}, {"Alumnos", 7}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Classes.List(ctx, apiclient.ClassFilters{Q: f.Query}, p)
				return rows(page, err, func(c apiclient.Class) []string {
					return []string{id(c.ID), c.Title, c.Kind, c.Level, Money(c.Price, c.Currency), strconv.Itoa(len(c.StudentIDs))}
				})
			},
		}, nil

	case session.EntityExercises:
		return Listing{
			Entity:   entity,
			Title:    "Ejercicios",
			Defaults: pagination.ExerciseDefaults,
			Columns:  []Column{{"ID", 6}, {"Nombre", 30}, {"Clase", 6}, {"Inicio", 10}, {"Fin", 10}, {"Estado", 18}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Exercises.List(ctx, apiclient.ExerciseFilters{
					Q: f.Query, ClassID: f.ClassID, Status: f.Status,
				}, p)
				return rows(page, err, func(e apiclient.Exercise) []string {
					return []string{id(e.ID), e.Name, id(e.ClassID), Date(e.StartDate), Date(e.EndDate), e.Status}
				})
			},
		}, nil

	case session.EntityDeliveries:
		return Listing{
			Entity:   entity,
			Title:    "Entregas",
			Defaults: pagination.DeliveryDefaults,
			Columns:  []Column{{"ID", 6}, {"Alumno", 6}, {"Ejercicio", 9}, {"Estado", 10}, {"Nota", 5}, {"Entregada", 10}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Deliveries.List(ctx, apiclient.DeliveryFilters{
					StudentID: f.StudentID, ExerciseID: f.ExerciseID, Status: f.Status,
				}, p)
				return rows(page, err, func(d apiclient.Delivery) []string {
					return []string{id(d.ID), id(d.StudentID), id(d.ExerciseID), d.Status, Grade(d.Grade), Date(d.DeliveredAt)}
				})
			},
		}, nil

	case session.EntityMaterials:
		return Listing{
			Entity:   entity,
			Title:    "Materiales",
			Defaults: pagination.MaterialDefaults,
			Columns:  []Column{{"ID", 6}, {"Nombre", 30}, {"Tipo", 9}, {"URL", 40}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Materials.List(ctx, apiclient.MaterialFilters{Q: f.Query}, p)
				return rows(page, err, func(m apiclient.Material) []string {
					return []string{id(m.ID), m.Name, m.Type, m.URL}
				})
			},
		}, nil

	case session.EntityPayments:
		return Listing{
			Entity:   entity,
			Title:    "Pagos",
			Defaults: pagination.PaymentDefaults,
			Columns:  []Column{{"ID", 6}, {"Alumno", 6}, {"Clase", 6}, {"Importe", 12}, {"Estado", 10}, {"Fecha", 10}},
			Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, [][]string, error) {
				page, err := svc.Payments.List(ctx, apiclient.PaymentFilters{
					StudentID: f.StudentID, Status: f.Status,
				}, p)
				return rows(page, err, func(pm apiclient.Payment) []string {
					return []string{id(pm.ID), id(pm.StudentID), id(pm.ClassID), Money(pm.Amount, pm.Currency), pm.Status, Date(pm.CreatedAt)}
				})
			},
		}, nil
	}
	return Listing{}, fmt.Errorf("unknown entity %q (expected one of %v)", entity, Entities)
}

func rows[T any](page *pagination.Page[T], err error, row func(T) []string) (pagination.Metadata, [][]string, error) {
	if err != nil {
		return pagination.Metadata{}, nil, err
	}
	out := make([][]string, 0, len(page.Content))
	for _, item := range page.Content {
		out = append(out, row(item))
	}
	return page.Metadata, out, nil
}

// Headers returns the column titles of l.
func (l Listing) Headers() []string {
	out := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		out[i] = c.Title
	}
	return out
}

func id(v int64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

// YesNo renders a flag in Spanish.
func YesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}

// Date renders a day in dd/mm/yyyy or "-" when absent.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// Money renders an amount with two decimals and its currency, EUR when empty.
func Money(amount float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// Grade renders a grade with one decimal or "-" when ungraded.
func Grade(g *float64) string {
	if g == nil {
		return "-"
	}
	return strconv.FormatFloat(*g, 'f', 1, 64)
}
