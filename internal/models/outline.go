package models

import "time"

// BlockType distinguishes outline levels.
type BlockType string

const (
	BlockTypeChapter    BlockType = "chapter"
	BlockTypeSequential BlockType = "sequential"
)

// OutlineBlock is a chapter or sequential in a course outline.
type OutlineBlock struct {
	ID          string     `db:"id" json:"id"`
	CourseID    string     `db:"course_id" json:"-"`
	ParentID    *string    `db:"parent_id" json:"-"`
	BlockType   BlockType  `db:"block_type" json:"type"`
	DisplayName string     `db:"display_name" json:"display_name"`
	Position    int        `db:"position" json:"-"`
	DueDate     *time.Time `db:"due_date" json:"due,omitempty"`
}

// CourseProgress records where a learner left off.
type CourseProgress struct {
	UserID      string    `db:"user_id"`
	CourseID    string    `db:"course_id"`
	LastBlockID string    `db:"last_block_id"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CourseOffer is an upgrade discount for audit learners.
type CourseOffer struct {
	CourseID   string    `db:"course_id" json:"-"`
	Code       string    `db:"code" json:"code"`
	Percentage int       `db:"percentage" json:"percentage"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
}
