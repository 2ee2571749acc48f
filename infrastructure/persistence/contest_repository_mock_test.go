package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music-contest/domain/model"
	"music-contest/domain/repository"
)

func TestContestCreateMapsUniqueViolations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContestRepository(db)
	contest := &model.Contest{ContestID: "c1", PublicChannelID: "p", ReviewChannelID: "r", Status: model.ContestStatusActive}

	mock.ExpectExec("INSERT INTO contests").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: contests.contest_id (1555)"))
	assert.ErrorIs(t, repo.Create(context.Background(), contest), repository.ErrDuplicateContest)

	mock.ExpectExec("INSERT INTO contests").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: contests.public_channel_id, contests.review_channel_id (2067)"))
	assert.ErrorIs(t, repo.Create(context.Background(), contest), repository.ErrDuplicateChannelPair)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContestGetByIDQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContestRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM contests").
		WillReturnError(errors.New("disk I/O error"))

	_, err = repo.GetByID(context.Background(), "c1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContestDeleteRollsBackOnCountError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContestRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err = repo.Delete(context.Background(), "c1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
