package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-home-api/internal/models"
)

// OutlineRepository reads outline structure, learner progress and offers.
type OutlineRepository struct {
	db *sqlx.DB
}

// NewOutlineRepository constructs the repository.
func NewOutlineRepository(db *sqlx.DB) *OutlineRepository {
	return &OutlineRepository{db: db}
}

// ListBlocks returns every chapter and sequential of a course ordered by position.
func (r *OutlineRepository) ListBlocks(ctx context.Context, courseID string) ([]models.OutlineBlock, error) {
	const query = `SELECT id, course_id, parent_id, block_type, display_name, position, due_date
        FROM outline_blocks WHERE course_id = $1 ORDER BY position ASC, id ASC`
	blocks := []models.OutlineBlock{}
	if err := r.db.SelectContext(ctx, &blocks, query, courseID); err != nil {
		return nil, fmt.Errorf("list outline blocks: %w", err)
	}
	return blocks, nil
}

// FindProgress returns the learner's last visited block, or nil when the
// course was never visited.
func (r *OutlineRepository) FindProgress(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	const query = `SELECT user_id, course_id, last_block_id, updated_at FROM course_progress WHERE user_id = $1 AND course_id = $2`
	var progress models.CourseProgress
	if err := r.db.GetContext(ctx, &progress, query, userID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course progress: %w", err)
	}
	return &progress, nil
}

// FindActiveOffer returns the offer with the latest expiry that is still valid at now.
func (r *OutlineRepository) FindActiveOffer(ctx context.Context, courseID string, now time.Time) (*models.CourseOffer, error) {
	const query = `SELECT course_id, code, percentage, expires_at FROM course_offers
        WHERE course_id = $1 AND expires_at > $2 ORDER BY expires_at DESC LIMIT 1`
	var offer models.CourseOffer
	if err := r.db.GetContext(ctx, &offer, query, courseID, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course offer: %w", err)
	}
	return &offer, nil
}
