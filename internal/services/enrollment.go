// ABOUTME: Enrollment facade for admin-driven and self-service class enrollment
// ABOUTME: Toggle reads the current status and then enrolls or unenrolls, in that order

package services

import (
	"context"

	"github.com/markalston/academia-console/internal/apiclient"
)

type Enrollment struct{ *base }

func (s *Enrollment) Enroll(ctx context.Context, studentID, classID int64) (*apiclient.EnrollmentResult, error) {
	req := apiclient.EnrollmentRequest{StudentID: studentID, ClassID: classID}
	if err := check(req); err != nil {
		return nil, s.fail("enrollment.enroll", err)
	}
	res, err := s.api.Enroll(ctx, req)
	if err != nil {
		return nil, s.fail("enrollment.enroll", err)
	}
	s.invalidate(studentStatsKey)
	return res, nil
}

func (s *Enrollment) Unenroll(ctx context.Context, studentID, classID int64) (*apiclient.EnrollmentResult, error) {
	req := apiclient.EnrollmentRequest{StudentID: studentID, ClassID: classID}
	if err := check(req); err != nil {
		return nil, s.fail("enrollment.unenroll", err)
	}
	res, err := s.api.Unenroll(ctx, req)
	if err != nil {
		return nil, s.fail("enrollment.unenroll", err)
	}
	s.invalidate(studentStatsKey)
	return res, nil
}

func (s *Enrollment) Status(ctx context.Context, classID, studentID int64) (*apiclient.EnrollmentStatus, error) {
	st, err := s.api.EnrollmentStatus(ctx, classID, studentID)
	if err != nil {
		return nil, s.fail("enrollment.status", err)
	}
	return st, nil
}

// MyStatus reports whether the logged-in student is enrolled in classID.
func (s *Enrollment) MyStatus(ctx context.Context, classID int64) (*apiclient.EnrollmentStatus, error) {
	st, err := s.api.MyEnrollmentStatus(ctx, classID)
	if err != nil {
		return nil, s.fail("enrollment.my_status", err)
	}
	return st, nil
}

func (s *Enrollment) EnrollMe(ctx context.Context, classID int64) (*apiclient.EnrollmentResult, error) {
	res, err := s.api.SelfEnroll(ctx, classID)
	if err != nil {
		return nil, s.fail("enrollment.enroll_me", err)
	}
	s.invalidate(studentStatsKey)
	return res, nil
}

func (s *Enrollment) UnenrollMe(ctx context.Context, classID int64) (*apiclient.EnrollmentResult, error) {
	res, err := s.api.SelfUnenroll(ctx, classID)
	if err != nil {
		return nil, s.fail("enrollment.unenroll_me", err)
	}
	s.invalidate(studentStatsKey)
	return res, nil
}

// Toggle flips the enrollment of studentID in classID.
func (s *Enrollment) Toggle(ctx context.Context, studentID, classID int64) (*apiclient.EnrollmentResult, error) {
	st, err := s.Status(ctx, classID, studentID)
	if err != nil {
		return nil, err
	}
	if st.Enrolled {
		return s.Unenroll(ctx, studentID, classID)
	}
	return s.Enroll(ctx, studentID, classID)
}
