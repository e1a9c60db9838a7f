// ABOUTME: Enrollment endpoints of the academy API
// ABOUTME: Staff enroll any student; students use the self-service routes

package apiclient

import (
	"context"
	"net/http"
)

// Enroll calls POST /api/enrollments
func (c *Client) Enroll(ctx context.Context, req EnrollmentRequest) (*EnrollmentResult, error) {
	var r EnrollmentResult
	if err := c.send(ctx, http.MethodPost, "/api/enrollments", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Unenroll calls DELETE /api/enrollments
func (c *Client) Unenroll(ctx context.Context, req EnrollmentRequest) (*EnrollmentResult, error) {
	var r EnrollmentResult
	if err := c.send(ctx, http.MethodDelete, "/api/enrollments", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// EnrollmentStatus calls GET /api/enrollments/{classId}/status/{studentId}
func (c *Client) EnrollmentStatus(ctx context.Context, classID, studentID int64) (*EnrollmentStatus, error) {
	var s EnrollmentStatus
	if err := c.get(ctx, idPath("/api/enrollments/%d/status/%d", classID, studentID), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MyEnrollmentStatus calls GET /api/enrollments/{classId}/my-status
func (c *Client) MyEnrollmentStatus(ctx context.Context, classID int64) (*EnrollmentStatus, error) {
	var s EnrollmentStatus
	if err := c.get(ctx, idPath("/api/enrollments/%d/my-status", classID), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SelfEnroll calls POST /api/enrollments/{classId}/self-enroll
func (c *Client) SelfEnroll(ctx context.Context, classID int64) (*EnrollmentResult, error) {
	var r EnrollmentResult
	if err := c.send(ctx, http.MethodPost, idPath("/api/enrollments/%d/self-enroll", classID), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// SelfUnenroll calls DELETE /api/enrollments/{classId}/self-unenroll
func (c *Client) SelfUnenroll(ctx context.Context, classID int64) (*EnrollmentResult, error) {
	var r EnrollmentResult
	if err := c.send(ctx, http.MethodDelete, idPath("/api/enrollments/%d/self-unenroll", classID), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
