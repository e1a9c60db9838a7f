// ABOUTME: Per-entity search filters encoded one-to-one onto query parameters
// ABOUTME: Unset fields are omitted so the backend applies no constraint

package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters is anything that encodes itself as query parameters.
type Filters interface {
	Values() url.Values
}

func setString(q url.Values, key, v string) {
	if v = strings.TrimSpace(v); v != "" {
		q.Set(key, v)
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

func setID(q url.Values, key string, v int64) {
	if v > 0 {
		q.Set(key, strconv.FormatInt(v, 10))
	}
}

func setFloat(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

type StudentFilters struct {
	Q         string
	FirstName string
	LastName  string
	DNI       string
	Email     string
	Enrolled  *bool
	Enabled   *bool
}

func (f StudentFilters) Values() url.Values {
	q := url.Values{}
	setString(q, "q", f.Q)
	setString(q, "firstName", f.FirstName)
	setString(q, "lastName", f.LastName)
	setString(q, "dni", f.DNI)
	setString(q, "email", f.Email)
	setBool(q, "enrolled", f.Enrolled)
	setBool(q, "enabled", f.Enabled)
	return q
}

type ProfessorFilters struct {
	Q         string
	FirstName string
	LastName  string
	Email     string
	Enabled   *bool
	ClassID   int64
}

func (f ProfessorFilters) Values() url.Values {
	q := url.Values{}
	setString(q, "q", f.Q)
	setString(q, "firstName", f.FirstName)
	setString(q, "lastName", f.LastName)
	setString(q, "email", f.Email)
	setBool(q, "enabled", f.Enabled)
	setID(q, "classId", f.ClassID)
	return q
}

type ClassFilters struct {
	Q           string
	Title       string
	Level       string
	ProfessorID int64
}

func (f ClassFilters) Values() url.Values {
	q := url.Values{}
	setString(q, "q", f.Q)
	setString(q, "title", f.Title)
	setString(q, "level", f.Level)
	setID(q, "professorId", f.ProfessorID)
	return q
}

type ExerciseFilters struct {
	Q       string
	Name    string
	ClassID int64
	Status  string
}

func (f ExerciseFilters) Values() url.Values {
	q := url.Values{}
	setString(q, "q", f.Q)
	setString(q, "name", f.Name)
	setID(q, "classId", f.ClassID)
	setString(q, "status", f.Status)
	return q
}

type DeliveryFilters struct {
	StudentID  int64
	ExerciseID int64
	Status     string
	MinGrade   *float64
	MaxGrade   *float64
}

func (f DeliveryFilters) Values() url.Values {
	q := url.Values{}
	setID(q, "studentId", f.StudentID)
	setID(q, "exerciseId", f.ExerciseID)
	setString(q, "status", f.Status)
	setFloat(q, "minGrade", f.MinGrade)
	setFloat(q, "maxGrade", f.MaxGrade)
	return q
}

type MaterialFilters struct {
	Q    string
	Name string
	Type string
}

func (f MaterialFilters) Values() url.Values {
	q := url.Values{}
	setString(q, "q", f.Q)
	setString(q, "name", f.Name)
	setString(q, "type", f.Type)
	return q
}

type PaymentFilters struct {
	StudentID int64
	Status    string
	MinAmount *float64
	MaxAmount *float64
}

func (f PaymentFilters) Values() url.Values {
	q := url.Values{}
	setID(q, "studentId", f.StudentID)
	setString(q, "status", f.Status)
	setFloat(q, "minAmount", f.MinAmount)
	setFloat(q, "maxAmount", f.MaxAmount)
	return q
}
