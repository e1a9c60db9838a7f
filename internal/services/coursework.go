// ABOUTME: Facades for exercises, deliveries and course materials
// ABOUTME: Grading checks the grade range locally before calling the API

package services

import (
	"context"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/pagination"
	"github.com/markalston/academia-console/internal/validate"
)

type Exercises struct{ *base }

func (s *Exercises) List(ctx context.Context, f apiclient.ExerciseFilters, p pagination.Params) (*pagination.Page[apiclient.Exercise], error) {
	page, err := s.api.ListExercises(ctx, f, params(p, pagination.ExerciseDefaults))
	if err != nil {
		return nil, s.fail("exercises.list", err)
	}
	return page, nil
}

// ByClass lists the exercises of one class.
func (s *Exercises) ByClass(ctx context.Context, classID int64, p pagination.Params) (*pagination.Page[apiclient.Exercise], error) {
	return s.List(ctx, apiclient.ExerciseFilters{ClassID: classID}, p)
}

func (s *Exercises) Get(ctx context.Context, id int64) (*apiclient.Exercise, error) {
	e, err := s.api.GetExercise(ctx, id)
	if err != nil {
		return nil, s.fail("exercises.get", err)
	}
	return e, nil
}

func (s *Exercises) Create(ctx context.Context, req apiclient.ExerciseCreate) (*apiclient.Exercise, error) {
	if err := check(req); err != nil {
		return nil, s.fail("exercises.create", err)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, s.fail("exercises.create", apperror.Validation(validate.FieldErrors{
			"endDate": {"La fecha de fin debe ser posterior a la de inicio"},
		}))
	}
	e, err := s.api.CreateExercise(ctx, req)
	if err != nil {
		return nil, s.fail("exercises.create", err)
	}
	return e, nil
}

func (s *Exercises) Update(ctx context.Context, id int64, req apiclient.ExerciseUpdate) (*apiclient.Exercise, error) {
	if err := check(req); err != nil {
		return nil, s.fail("exercises.update", err)
	}
	e, err := s.api.UpdateExercise(ctx, id, req)
	if err != nil {
		return nil, s.fail("exercises.update", err)
	}
	return e, nil
}

func (s *Exercises) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteExercise(ctx, id); err != nil {
		return s.fail("exercises.delete", err)
	}
	return nil
}

type Deliveries struct{ *base }

func (s *Deliveries) List(ctx context.Context, f apiclient.DeliveryFilters, p pagination.Params) (*pagination.Page[apiclient.Delivery], error) {
	page, err := s.api.ListDeliveries(ctx, f, params(p, pagination.DeliveryDefaults))
	if err != nil {
		return nil, s.fail("deliveries.list", err)
	}
	return page, nil
}

func (s *Deliveries) Get(ctx context.Context, id int64) (*apiclient.Delivery, error) {
	d, err := s.api.GetDelivery(ctx, id)
	if err != nil {
		return nil, s.fail("deliveries.get", err)
	}
	return d, nil
}

func (s *Deliveries) Create(ctx context.Context, req apiclient.DeliveryCreate) (*apiclient.Delivery, error) {
	if err := check(req); err != nil {
		return nil, s.fail("deliveries.create", err)
	}
	d, err := s.api.CreateDelivery(ctx, req)
	if err != nil {
		return nil, s.fail("deliveries.create", err)
	}
	return d, nil
}

func (s *Deliveries) Update(ctx context.Context, id int64, req apiclient.DeliveryUpdate) (*apiclient.Delivery, error) {
	if err := check(req); err != nil {
		return nil, s.fail("deliveries.update", err)
	}
	d, err := s.api.UpdateDelivery(ctx, id, req)
	if err != nil {
		return nil, s.fail("deliveries.update", err)
	}
	return d, nil
}

// Grade records a grade in [0,10] and marks the delivery GRADED.
func (s *Deliveries) Grade(ctx context.Context, id int64, grade float64, comments string) (*apiclient.Delivery, error) {
	if r := validate.Grade(grade); !r.IsValid {
		return nil, s.fail("deliveries.grade", apperror.Validation(validate.FieldErrors{"grade": {r.Message}}))
	}
	status := apiclient.DeliveryGraded
	req := apiclient.DeliveryUpdate{Status: &status, Grade: &grade}
	if comments != "" {
		req.Comments = &comments
	}
	d, err := s.api.UpdateDelivery(ctx, id, req)
	if err != nil {
		return nil, s.fail("deliveries.grade", err)
	}
	return d, nil
}

func (s *Deliveries) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteDelivery(ctx, id); err != nil {
		return s.fail("deliveries.delete", err)
	}
	return nil
}

type Materials struct{ *base }

func (s *Materials) List(ctx context.Context, f apiclient.MaterialFilters, p pagination.Params) (*pagination.Page[apiclient.Material], error) {
	page, err := s.api.ListMaterials(ctx, f, params(p, pagination.MaterialDefaults))
	if err != nil {
		return nil, s.fail("materials.list", err)
	}
	return page, nil
}

func (s *Materials) Get(ctx context.Context, id int64) (*apiclient.Material, error) {
	m, err := s.api.GetMaterial(ctx, id)
	if err != nil {
		return nil, s.fail("materials.get", err)
	}
	return m, nil
}

func (s *Materials) Create(ctx context.Context, req apiclient.MaterialCreate) (*apiclient.Material, error) {
	if err := check(req); err != nil {
		return nil, s.fail("materials.create", err)
	}
	m, err := s.api.CreateMaterial(ctx, req)
	if err != nil {
		return nil, s.fail("materials.create", err)
	}
	return m, nil
}

func (s *Materials) Update(ctx context.Context, id int64, req apiclient.MaterialUpdate) (*apiclient.Material, error) {
	if err := check(req); err != nil {
		return nil, s.fail("materials.update", err)
	}
	m, err := s.api.UpdateMaterial(ctx, id, req)
	if err != nil {
		return nil, s.fail("materials.update", err)
	}
	return m, nil
}

func (s *Materials) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteMaterial(ctx, id); err != nil {
		return s.fail("materials.delete", err)
	}
	return nil
}
