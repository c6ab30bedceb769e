package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
)

const enrollCourseID = "course-v1:edX+Enroll+2024"

type enrollmentFixture struct {
	svc     *EnrollmentService
	repo    *fakeEnrollmentRepo
	queue   *fakeQueue
	metrics *MetricsService
}

func newEnrollmentFixture(course models.Course, enrollments ...models.Enrollment) *enrollmentFixture {
	course.ID = enrollCourseID
	repo := newFakeEnrollmentRepo(enrollments...)
	queue := &fakeQueue{}
	metrics := NewMetricsService()
	svc := NewEnrollmentService(EnrollmentServiceParams{
		Catalog:     NewCourseCatalog(newFakeCourseRepo(course), nil, time.Minute),
		Enrollments: repo,
		Queue:       queue,
		Metrics:     metrics,
	})
	svc.now = func() time.Time { return fixedNow }
	return &enrollmentFixture{svc: svc, repo: repo, queue: queue, metrics: metrics}
}

var learner = models.Viewer{UserID: "u1", Role: models.RoleLearner}

func TestEnrollCreatesAuditEnrollment(t *testing.T) {
	f := newEnrollmentFixture(models.Course{})

	resp, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: enrollCourseID})
	require.NoError(t, err)
	assert.False(t, resp.Reactivated)
	assert.Equal(t, "audit", resp.Enrollment.Mode)
	assert.True(t, resp.Enrollment.IsActive)
	assert.Equal(t, "u1", resp.Enrollment.UserID)

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, EnrollmentAuditJobType, job.Type)
	payload, ok := job.Payload.(EnrollmentAudit)
	require.True(t, ok)
	assert.Equal(t, models.AuditActionEnroll, payload.Action)
	assert.Equal(t, resp.Enrollment.ID, payload.EnrollmentID)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.enrollments.WithLabelValues(EnrollResultCreated)))
}

func TestEnrollReactivatesInactive(t *testing.T) {
	f := newEnrollmentFixture(models.Course{}, models.Enrollment{
		ID: "e-old", UserID: "u1", CourseID: enrollCourseID, Mode: "verified", IsActive: false,
	})

	resp, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: enrollCourseID})
	require.NoError(t, err)
	assert.True(t, resp.Reactivated)
	assert.Equal(t, "verified", resp.Enrollment.Mode)
	assert.True(t, resp.Enrollment.IsActive)
	assert.Equal(t, []string{"e-old"}, f.repo.reactivated)
	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, models.AuditActionReactivate, f.queue.jobs[0].Payload.(EnrollmentAudit).Action)
}

func TestEnrollRejectsActiveEnrollment(t *testing.T) {
	f := newEnrollmentFixture(models.Course{}, models.Enrollment{
		ID: "e1", UserID: "u1", CourseID: enrollCourseID, Mode: "audit", IsActive: true,
	})

	_, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: enrollCourseID})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
	assert.Empty(t, f.queue.jobs)
}

func TestEnrollConcurrentInsertConflict(t *testing.T) {
	f := newEnrollmentFixture(models.Course{})
	f.repo.createErr = appErrors.Wrap(errors.New("duplicate key"), appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "already enrolled")

	_, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: enrollCourseID})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.enrollments.WithLabelValues(EnrollResultConflict)))
}

func TestEnrollPreconditions(t *testing.T) {
	cases := map[string]models.Course{
		"invitation only":   {InvitationOnly: true},
		"course ended":      {EndDate: timePtr(fixedNow.Add(-time.Hour))},
		"window not opened": {EnrollmentStart: timePtr(fixedNow.Add(time.Hour))},
		"window closed":     {EnrollmentEnd: timePtr(fixedNow.Add(-time.Hour))},
	}
	for name, course := range cases {
		t.Run(name, func(t *testing.T) {
			f := newEnrollmentFixture(course)
			_, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: enrollCourseID})
			require.Error(t, err)
			assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)
		})
	}
}

func TestEnrollValidation(t *testing.T) {
	f := newEnrollmentFixture(models.Course{})

	_, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := newEnrollmentFixture(models.Course{})

	_, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: "missing"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestEnrollRequiresUser(t *testing.T) {
	f := newEnrollmentFixture(models.Course{})

	_, err := f.svc.Enroll(context.Background(), models.Viewer{}, dto.EnrollRequest{CourseID: enrollCourseID})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestEnrollQueueFailureDoesNotFail(t *testing.T) {
	f := newEnrollmentFixture(models.Course{})
	f.queue.err = errors.New("queue enrollment-audit not started")

	resp, err := f.svc.Enroll(context.Background(), learner, dto.EnrollRequest{CourseID: enrollCourseID})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Enrollment.ID)
}
