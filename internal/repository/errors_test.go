package repository

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepositoryGetByEmailDBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(errors.New("connection refused"))

	user, err := repo.GetByEmail(context.Background(), "x@example.com")
	assert.Nil(t, user)
	require.Error(t, err)

	// A transport failure must surface as an internal error, never as a
	// silent miss.
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryListByPostDBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "comments"`).
		WillReturnError(errors.New("connection reset"))

	comments, err := repo.ListByPost(context.Background(), 1)
	assert.Nil(t, comments)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryCountAllDBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnError(errors.New("timeout"))

	count, err := repo.CountAll(context.Background())
	assert.Zero(t, count)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
