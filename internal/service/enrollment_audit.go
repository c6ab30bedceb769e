package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/course-home-api/internal/models"
	"github.com/noah-isme/course-home-api/pkg/jobs"
)

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// EnrollmentAuditWorker persists enrollment audit jobs.
type EnrollmentAuditWorker struct {
	repo   auditWriter
	logger *zap.Logger
}

// NewEnrollmentAuditWorker constructs a worker.
func NewEnrollmentAuditWorker(repo auditWriter, logger *zap.Logger) *EnrollmentAuditWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentAuditWorker{repo: repo, logger: logger}
}

// Handle processes a queue job.
func (w *EnrollmentAuditWorker) Handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(EnrollmentAudit)
	if !ok {
		w.logger.Sugar().Errorw("unexpected audit payload", "job_id", job.ID, "type", job.Type)
		return nil
	}
	values, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}
	userID := payload.UserID
	resourceID := payload.EnrollmentID
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     payload.Action,
		Resource:   "enrollment",
		ResourceID: &resourceID,
		NewValues:  values,
		CreatedAt:  payload.OccurredAt,
	}
	if err := w.repo.Create(ctx, log); err != nil {
		return err
	}
	w.logger.Sugar().Debugw("enrollment audited", "job_id", job.ID, "enrollment_id", payload.EnrollmentID, "attempt", job.Attempt)
	return nil
}
