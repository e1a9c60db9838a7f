// ABOUTME: Professor facade: listing, CRUD, account state and class assignment
// ABOUTME: Mutations that change counters drop the cached statistics

package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/pagination"
)

const professorStatsKey = "professors:stats"

type Professors struct{ *base }

type ProfessorStatistics struct {
	Total    int64 `json:"total"`
	Enabled  int64 `json:"enabled"`
	Disabled int64 `json:"disabled"`
}

func (s *Professors) List(ctx context.Context, f apiclient.ProfessorFilters, p pagination.Params) (*pagination.Page[apiclient.Professor], error) {
	page, err := s.api.ListProfessors(ctx, f, params(p, pagination.ProfessorDefaults))
	if err != nil {
		return nil, s.fail("professors.list", err)
	}
	return page, nil
}

func (s *Professors) Get(ctx context.Context, id int64) (*apiclient.Professor, error) {
	pr, err := s.api.GetProfessor(ctx, id)
	if err != nil {
		return nil, s.fail("professors.get", err)
	}
	return pr, nil
}

func (s *Professors) Create(ctx context.Context, req apiclient.ProfessorCreate) (*apiclient.Professor, error) {
	if err := check(req); err != nil {
		return nil, s.fail("professors.create", err)
	}
	pr, err := s.api.CreateProfessor(ctx, req)
	if err != nil {
		return nil, s.fail("professors.create", err)
	}
	s.invalidate(professorStatsKey)
	return pr, nil
}

func (s *Professors) Update(ctx context.Context, id int64, req apiclient.ProfessorUpdate) (*apiclient.Professor, error) {
	if err := check(req); err != nil {
		return nil, s.fail("professors.update", err)
	}
	pr, err := s.api.UpdateProfessor(ctx, id, req)
	if err != nil {
		return nil, s.fail("professors.update", err)
	}
	return pr, nil
}

func (s *Professors) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteProfessor(ctx, id); err != nil {
		return s.fail("professors.delete", err)
	}
	s.invalidate(professorStatsKey)
	return nil
}

func (s *Professors) SetEnabled(ctx context.Context, id int64, enabled bool) (*apiclient.Professor, error) {
	pr, err := s.api.SetProfessorEnabled(ctx, id, enabled)
	if err != nil {
		return nil, s.fail("professors.set_enabled", err)
	}
	s.invalidate(professorStatsKey)
	return pr, nil
}

func (s *Professors) AssignClass(ctx context.Context, id, classID int64) (*apiclient.Professor, error) {
	pr, err := s.api.AssignProfessorClass(ctx, id, classID)
	if err != nil {
		return nil, s.fail("professors.assign_class", err)
	}
	return pr, nil
}

func (s *Professors) RemoveClass(ctx context.Context, id, classID int64) (*apiclient.Professor, error) {
	pr, err := s.api.RemoveProfessorClass(ctx, id, classID)
	if err != nil {
		return nil, s.fail("professors.remove_class", err)
	}
	return pr, nil
}

func (s *Professors) Statistics(ctx context.Context) (ProfessorStatistics, error) {
	stats, err := cached(ctx, s.base, professorStatsKey, func(ctx context.Context) (ProfessorStatistics, error) {
		var (
			total  *apiclient.Count
			counts *apiclient.EnabledCounts
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			total, err = s.api.CountProfessors(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts, err = s.api.ProfessorEnabledCounts(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return ProfessorStatistics{}, err
		}
		return ProfessorStatistics{Total: total.Total, Enabled: counts.Enabled, Disabled: counts.Disabled}, nil
	})
	if err != nil {
		return ProfessorStatistics{}, s.fail("professors.statistics", err)
	}
	return stats, nil
}
