package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
)

type fakeCourseHomeSrv struct {
	resp       *dto.CourseMetadata
	hit        bool
	err        error
	lastCourse string
	lastViewer models.Viewer
}

func (f *fakeCourseHomeSrv) Metadata(_ context.Context, courseID string, viewer models.Viewer) (*dto.CourseMetadata, bool, error) {
	f.lastCourse = courseID
	f.lastViewer = viewer
	return f.resp, f.hit, f.err
}

type fakePurger struct {
	purged []string
}

func (f *fakePurger) Invalidate(_ context.Context, courseID string) {
	f.purged = append(f.purged, courseID)
}

func TestCourseHomeHandlerMetadataSuccess(t *testing.T) {
	srv := &fakeCourseHomeSrv{
		resp: &dto.CourseMetadata{
			CourseID:          "course-1",
			IsEnrolled:        true,
			LearningAssistant: dto.LearningAssistant{Enabled: true, Visible: true},
		},
		hit: true,
	}
	handler := NewCourseHomeHandler(srv, nil)
	c, rec := newTestContext(http.MethodGet, "/course_home/course-1/metadata", learnerClaims)
	c.Params = gin.Params{{Key: "courseId", Value: "course-1"}}

	handler.Metadata(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "course-1", envelope.Data["course_id"])
	assistant, ok := envelope.Data["learning_assistant"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, assistant["visible"])
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, "course-1", srv.lastCourse)
	assert.Equal(t, "u1", srv.lastViewer.UserID)
}

func TestCourseHomeHandlerMetadataRequiresClaims(t *testing.T) {
	handler := NewCourseHomeHandler(&fakeCourseHomeSrv{}, nil)
	c, rec := newTestContext(http.MethodGet, "/course_home/course-1/metadata", nil)

	handler.Metadata(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCourseHomeHandlerMetadataNotFound(t *testing.T) {
	handler := NewCourseHomeHandler(&fakeCourseHomeSrv{err: appErrors.Clone(appErrors.ErrNotFound, "course not found")}, nil)
	c, rec := newTestContext(http.MethodGet, "/course_home/missing/metadata", learnerClaims)
	c.Params = gin.Params{{Key: "courseId", Value: "missing"}}

	handler.Metadata(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error["code"])
	assert.Equal(t, "course not found", envelope.Error["message"])
}

func TestCourseHomeHandlerPurgeCache(t *testing.T) {
	purger := &fakePurger{}
	handler := NewCourseHomeHandler(nil, purger)
	c, rec := newTestContext(http.MethodDelete, "/course_home/course-1/cache", &models.JWTClaims{UserID: "s1", Role: models.RoleStaff})
	c.Params = gin.Params{{Key: "courseId", Value: "course-1"}}

	handler.PurgeCache(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"course-1"}, purger.purged)
}
