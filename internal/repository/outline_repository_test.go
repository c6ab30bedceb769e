package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-home-api/internal/models"
)

func TestOutlineRepositoryListBlocks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOutlineRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_id", "parent_id", "block_type", "display_name", "position", "due_date"}).
		AddRow("ch1", "c1", nil, "chapter", "Week 1", 0, nil).
		AddRow("seq1", "c1", "ch1", "sequential", "Welcome", 0, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outline_blocks WHERE course_id = $1 ORDER BY position ASC")).
		WithArgs("c1").
		WillReturnRows(rows)

	blocks, err := repo.ListBlocks(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Nil(t, blocks[0].ParentID)
	require.NotNil(t, blocks[1].ParentID)
	assert.Equal(t, "ch1", *blocks[1].ParentID)
	assert.Equal(t, models.BlockTypeSequential, blocks[1].BlockType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutlineRepositoryFindProgressMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOutlineRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM course_progress WHERE user_id = $1 AND course_id = $2")).
		WithArgs("user-1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "course_id", "last_block_id", "updated_at"}))

	progress, err := repo.FindProgress(context.Background(), "user-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, progress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutlineRepositoryFindActiveOffer(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOutlineRepository(db)

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"course_id", "code", "percentage", "expires_at"}).
		AddRow("c1", "UPGRADE15", 15, now.Add(48*time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM course_offers")).
		WithArgs("c1", now).
		WillReturnRows(rows)

	offer, err := repo.FindActiveOffer(context.Background(), "c1", now)
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, 15, offer.Percentage)
	require.NoError(t, mock.ExpectationsWereMet())
}
