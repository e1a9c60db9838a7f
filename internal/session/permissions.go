// ABOUTME: Role-derived permissions for console actions and routes
// ABOUTME: Unknown or anonymous sessions are denied (fail-closed)

package session

import "strings"

// Entity kinds used by permission checks.
const (
	EntityStudents   = "students"
	EntityProfessors = "professors"
	EntityClasses    = "classes"
	EntityExercises  = "exercises"
	EntityDeliveries = "deliveries"
	EntityMaterials  = "materials"
	EntityPayments   = "payments"
)

// routeRoles lists the roles allowed on restricted routes. Routes not listed
// are open to any session.
var routeRoles = map[string][]string{
	"/admin":          {RoleAdmin},
	"/professors":     {RoleAdmin, RoleProfessor},
	"/students":       {RoleAdmin, RoleProfessor},
	"/payments/admin": {RoleAdmin},
	"/classes/new":    {RoleAdmin, RoleProfessor},
	"/exercises/new":  {RoleAdmin, RoleProfessor},
	"/materials/new":  {RoleAdmin, RoleProfessor},
}

// CanEdit: admins edit everything, professors may edit professor records.
func (s Session) CanEdit(entity string) bool {
	return s.IsAdmin() || (entity == EntityProfessors && s.IsProfessor())
}

func (s Session) CanDelete(string) bool { return s.IsAdmin() }

func (s Session) CanGradeDelivery() bool { return s.HasAnyRole(RoleAdmin, RoleProfessor) }

func (s Session) CanEnrollInClass() bool { return s.IsStudent() }

func (s Session) CanManagePayments() bool { return s.IsAdmin() }

func (s Session) CanViewAllStudents() bool { return s.HasAnyRole(RoleAdmin, RoleProfessor) }

func (s Session) CanViewAllProfessors() bool { return s.IsAdmin() }

// CanCreate covers classes, exercises and materials.
func (s Session) CanCreate(entity string) bool {
	switch entity {
	case EntityClasses, EntityExercises, EntityMaterials:
		return s.HasAnyRole(RoleAdmin, RoleProfessor)
	}
	return s.IsAdmin()
}

// CanAccessRoute checks path (query string ignored) against the route table.
func (s Session) CanAccessRoute(path string) bool {
	path, _, _ = strings.Cut(path, "?")
	roles, restricted := routeRoles[path]
	if !restricted {
		return true
	}
	return s.HasAnyRole(roles...)
}

// CanList reports whether the session may browse the full listing of entity.
func (s Session) CanList(entity string) bool {
	switch entity {
	case EntityStudents:
		return s.CanViewAllStudents()
	case EntityProfessors:
		return s.CanViewAllProfessors()
	case EntityDeliveries:
		return s.CanGradeDelivery()
	case EntityPayments:
		return s.CanManagePayments()
	case EntityClasses, EntityExercises, EntityMaterials:
		return s.IsAuthenticated()
	}
	return false
}
