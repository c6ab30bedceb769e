package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
)

type fakeEnrollmentSrv struct {
	resp    *dto.EnrollResponse
	err     error
	lastReq dto.EnrollRequest
}

func (f *fakeEnrollmentSrv) Enroll(_ context.Context, _ models.Viewer, req dto.EnrollRequest) (*dto.EnrollResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func enrollRequest(body string) (*httptest.ResponseRecorder, func(*EnrollmentHandler)) {
	c, rec := newTestContext(http.MethodPost, "/enrollment", learnerClaims)
	c.Request = httptest.NewRequest(http.MethodPost, "/enrollment", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return rec, func(h *EnrollmentHandler) { h.Create(c) }
}

func TestEnrollmentHandlerCreated(t *testing.T) {
	srv := &fakeEnrollmentSrv{resp: &dto.EnrollResponse{
		Enrollment: models.Enrollment{ID: "e1", UserID: "u1", CourseID: "course-1", Mode: "audit", IsActive: true},
	}}
	rec, run := enrollRequest(`{"course_id":"course-1"}`)

	run(NewEnrollmentHandler(srv))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "course-1", srv.lastReq.CourseID)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Data["reactivated"])
}

func TestEnrollmentHandlerReactivated(t *testing.T) {
	srv := &fakeEnrollmentSrv{resp: &dto.EnrollResponse{Reactivated: true}}
	rec, run := enrollRequest(`{"course_id":"course-1"}`)

	run(NewEnrollmentHandler(srv))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnrollmentHandlerBadJSON(t *testing.T) {
	rec, run := enrollRequest(`{"course_id":`)

	run(NewEnrollmentHandler(&fakeEnrollmentSrv{}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollmentHandlerPreconditionFailed(t *testing.T) {
	srv := &fakeEnrollmentSrv{err: appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment is not open for this course")}
	rec, run := enrollRequest(`{"course_id":"course-1"}`)

	run(NewEnrollmentHandler(srv))

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "PRECONDITION_FAILED", envelope.Error["code"])
}

func TestEnrollmentHandlerRequiresClaims(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/enrollment", nil)

	NewEnrollmentHandler(&fakeEnrollmentSrv{}).Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
