// ABOUTME: Student facade: listing, CRUD, account toggles and dashboard statistics
// ABOUTME: Statistics fetch their two counters concurrently and are cached briefly

package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/pagination"
)

const studentStatsKey = "students:stats"

type Students struct{ *base }

// StudentStatistics is the students dashboard summary.
type StudentStatistics struct {
	Total       int64 `json:"total"`
	Enrolled    int64 `json:"enrolled"`
	NotEnrolled int64 `json:"notEnrolled"`
}

func (s *Students) List(ctx context.Context, f apiclient.StudentFilters, p pagination.Params) (*pagination.Page[apiclient.Student], error) {
	page, err := s.api.ListStudents(ctx, f, params(p, pagination.StudentDefaults))
	if err != nil {
		return nil, s.fail("students.list", err)
	}
	return page, nil
}

// Available lists students not yet enrolled in any class.
func (s *Students) Available(ctx context.Context, p pagination.Params) (*pagination.Page[apiclient.Student], error) {
	page, err := s.api.ListAvailableStudents(ctx, params(p, pagination.StudentDefaults))
	if err != nil {
		return nil, s.fail("students.available", err)
	}
	return page, nil
}

func (s *Students) Get(ctx context.Context, id int64) (*apiclient.Student, error) {
	st, err := s.api.GetStudent(ctx, id)
	if err != nil {
		return nil, s.fail("students.get", err)
	}
	return st, nil
}

// Profile returns the student record of the logged-in user.
func (s *Students) Profile(ctx context.Context) (*apiclient.Student, error) {
	st, err := s.api.MyProfile(ctx)
	if err != nil {
		return nil, s.fail("students.profile", err)
	}
	return st, nil
}

func (s *Students) Create(ctx context.Context, req apiclient.StudentCreate) (*apiclient.Student, error) {
	if err := check(req); err != nil {
		return nil, s.fail("students.create", err)
	}
	st, err := s.api.CreateStudent(ctx, req)
	if err != nil {
		return nil, s.fail("students.create", err)
	}
	s.invalidate(studentStatsKey)
	return st, nil
}

func (s *Students) Update(ctx context.Context, id int64, req apiclient.StudentUpdate) (*apiclient.Student, error) {
	if err := check(req); err != nil {
		return nil, s.fail("students.update", err)
	}
	st, err := s.api.UpdateStudent(ctx, id, req)
	if err != nil {
		return nil, s.fail("students.update", err)
	}
	return st, nil
}

func (s *Students) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteStudent(ctx, id); err != nil {
		return s.fail("students.delete", err)
	}
	s.invalidate(studentStatsKey)
	return nil
}

func (s *Students) SetEnrolled(ctx context.Context, id int64, enrolled bool) (*apiclient.Student, error) {
	st, err := s.api.SetStudentEnrolled(ctx, id, enrolled)
	if err != nil {
		return nil, s.fail("students.set_enrolled", err)
	}
	s.invalidate(studentStatsKey)
	return st, nil
}

func (s *Students) SetEnabled(ctx context.Context, id int64, enabled bool) (*apiclient.Student, error) {
	st, err := s.api.SetStudentEnabled(ctx, id, enabled)
	if err != nil {
		return nil, s.fail("students.set_enabled", err)
	}
	return st, nil
}

func (s *Students) Statistics(ctx context.Context) (StudentStatistics, error) {
	stats, err := cached(ctx, s.base, studentStatsKey, func(ctx context.Context) (StudentStatistics, error) {
		var (
			total  *apiclient.Count
			counts *apiclient.EnrollmentCounts
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			total, err = s.api.CountStudents(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts, err = s.api.StudentEnrollmentCounts(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return StudentStatistics{}, err
		}
		return StudentStatistics{
			Total:       total.Total,
			Enrolled:    counts.Enrolled,
			NotEnrolled: counts.NotEnrolled,
		}, nil
	})
	if err != nil {
		return StudentStatistics{}, s.fail("students.statistics", err)
	}
	return stats, nil
}
