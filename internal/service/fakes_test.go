package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/noah-isme/course-home-api/internal/models"
	"github.com/noah-isme/course-home-api/pkg/jobs"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

type fakeCourseRepo struct {
	courses   map[string]models.Course
	tabs      map[string][]models.CourseTab
	findCalls int
	err       error
}

func newFakeCourseRepo(courses ...models.Course) *fakeCourseRepo {
	repo := &fakeCourseRepo{courses: map[string]models.Course{}, tabs: map[string][]models.CourseTab{}}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return repo
}

func (f *fakeCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	course, ok := f.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &course, nil
}

func (f *fakeCourseRepo) ListTabs(_ context.Context, courseID string) ([]models.CourseTab, error) {
	return f.tabs[courseID], nil
}

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments map[string]*models.Enrollment
	findErr     error
	createErr   error
	reactivated []string
}

func newFakeEnrollmentRepo(items ...models.Enrollment) *fakeEnrollmentRepo {
	repo := &fakeEnrollmentRepo{enrollments: map[string]*models.Enrollment{}}
	for i := range items {
		item := items[i]
		repo.enrollments[item.UserID+"|"+item.CourseID] = &item
	}
	return repo
}

func (f *fakeEnrollmentRepo) FindByUserAndCourse(_ context.Context, userID, courseID string) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	e, ok := f.enrollments[userID+"|"+courseID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	found := *e
	return &found, nil
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if e.ID == "" {
		e.ID = "enr-" + e.UserID
	}
	e.IsActive = true
	e.CreatedAt = fixedNow
	stored := *e
	f.enrollments[e.UserID+"|"+e.CourseID] = &stored
	return nil
}

func (f *fakeEnrollmentRepo) Reactivate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.enrollments {
		if e.ID == id {
			e.IsActive = true
			f.reactivated = append(f.reactivated, id)
			return nil
		}
	}
	return errors.New("enrollment not found")
}

type fakeOutlineRepo struct {
	blocks    map[string][]models.OutlineBlock
	progress  map[string]*models.CourseProgress
	offers    map[string]*models.CourseOffer
	listCalls int
}

func newFakeOutlineRepo() *fakeOutlineRepo {
	return &fakeOutlineRepo{
		blocks:   map[string][]models.OutlineBlock{},
		progress: map[string]*models.CourseProgress{},
		offers:   map[string]*models.CourseOffer{},
	}
}

func (f *fakeOutlineRepo) ListBlocks(_ context.Context, courseID string) ([]models.OutlineBlock, error) {
	f.listCalls++
	return f.blocks[courseID], nil
}

func (f *fakeOutlineRepo) FindProgress(_ context.Context, userID, courseID string) (*models.CourseProgress, error) {
	return f.progress[userID+"|"+courseID], nil
}

func (f *fakeOutlineRepo) FindActiveOffer(_ context.Context, courseID string, now time.Time) (*models.CourseOffer, error) {
	offer := f.offers[courseID]
	if offer == nil || !now.Before(offer.ExpiresAt) {
		return nil, nil
	}
	return offer, nil
}

type fakeQueue struct {
	jobs []jobs.Job
	err  error
}

func (f *fakeQueue) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeAuditRepo struct {
	logs []*models.AuditLog
	err  error
}

func (f *fakeAuditRepo) Create(_ context.Context, log *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, log)
	return nil
}
