// ABOUTME: Class facade for courses and workshops
// ABOUTME: Includes the paged roster of students in one class

package services

import (
	"context"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/pagination"
)

type Classes struct{ *base }

func (s *Classes) List(ctx context.Context, f apiclient.ClassFilters, p pagination.Params) (*pagination.Page[apiclient.Class], error) {
	page, err := s.api.ListClasses(ctx, f, params(p, pagination.ClassDefaults))
	if err != nil {
		return nil, s.fail("classes.list", err)
	}
	return page, nil
}

func (s *Classes) Get(ctx context.Context, id int64) (*apiclient.Class, error) {
	c, err := s.api.GetClass(ctx, id)
	if err != nil {
		return nil, s.fail("classes.get", err)
	}
	return c, nil
}

func (s *Classes) Create(ctx context.Context, req apiclient.ClassCreate) (*apiclient.Class, error) {
	if req.Kind == "" {
		req.Kind = apiclient.ClassKindCourse
	}
	if err := check(req); err != nil {
		return nil, s.fail("classes.create", err)
	}
	c, err := s.api.CreateClass(ctx, req)
	if err != nil {
		return nil, s.fail("classes.create", err)
	}
	return c, nil
}

func (s *Classes) Update(ctx context.Context, id int64, req apiclient.ClassUpdate) (*apiclient.Class, error) {
	if err := check(req); err != nil {
		return nil, s.fail("classes.update", err)
	}
	c, err := s.api.UpdateClass(ctx, id, req)
	if err != nil {
		return nil, s.fail("classes.update", err)
	}
	return c, nil
}

func (s *Classes) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteClass(ctx, id); err != nil {
		return s.fail("classes.delete", err)
	}
	return nil
}

// Students lists the roster of class id.
func (s *Classes) Students(ctx context.Context, id int64, p pagination.Params) (*pagination.Page[apiclient.Student], error) {
	page, err := s.api.ListClassStudents(ctx, id, params(p, pagination.StudentDefaults))
	if err != nil {
		return nil, s.fail("classes.students", err)
	}
	return page, nil
}
