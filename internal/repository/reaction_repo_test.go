package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupReactionRepo(t *testing.T) (ReactionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	return NewReactionRepository(gdb), mock
}

func expectMovieLock(mock sqlmock.Sqlmock, movieID, authorID uint) {
	mock.ExpectQuery("SELECT `id`,`author_id` FROM `movies` WHERE .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id"}).AddRow(movieID, authorID))
}

func expectNoExistingReaction(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `movie_reactions` WHERE movie_id = ? AND user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "user_id", "kind", "created_at"}))
}

func expectExistingReaction(mock sqlmock.Sqlmock, id, movieID, userID uint, kind domain.ReactionKind) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `movie_reactions` WHERE movie_id = ? AND user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "user_id", "kind", "created_at"}).
			AddRow(id, movieID, userID, string(kind), time.Now()))
}

func expectCountAdjust(mock sqlmock.Sqlmock, column string, delta int) {
	stmt := "UPDATE `movies` SET `" + column + "`=" + column + " + 1 WHERE id = ?"
	if delta < 0 {
		stmt = "UPDATE `movies` SET `" + column + "`=GREATEST(" + column + " - 1, 0) WHERE id = ?"
	}
	mock.ExpectExec(regexp.QuoteMeta(stmt)).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestToggle_AddsLike(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 2)
	expectNoExistingReaction(mock)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `movie_reactions`")).
		WithArgs(7, 5, "like", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	expectCountAdjust(mock, "like_count", +1)
	mock.ExpectCommit()

	outcome, err := repo.Toggle(7, 5, domain.ReactionLike)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAdded, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_AddsDislike(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 2)
	expectNoExistingReaction(mock)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `movie_reactions`")).
		WithArgs(7, 5, "dislike", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	expectCountAdjust(mock, "dislike_count", +1)
	mock.ExpectCommit()

	outcome, err := repo.Toggle(7, 5, domain.ReactionDislike)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAdded, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_RemovesSameKind(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 2)
	expectExistingReaction(mock, 11, 7, 5, domain.ReactionLike)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `movie_reactions` WHERE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCountAdjust(mock, "like_count", -1)
	mock.ExpectCommit()

	outcome, err := repo.Toggle(7, 5, domain.ReactionLike)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_RemovesDislike(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 2)
	expectExistingReaction(mock, 11, 7, 5, domain.ReactionDislike)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `movie_reactions` WHERE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCountAdjust(mock, "dislike_count", -1)
	mock.ExpectCommit()

	outcome, err := repo.Toggle(7, 5, domain.ReactionDislike)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_SwitchLikeToDislikeAdjustsBothCounters(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 2)
	expectExistingReaction(mock, 11, 7, 5, domain.ReactionLike)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `movie_reactions` SET `kind`=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCountAdjust(mock, "like_count", -1)
	expectCountAdjust(mock, "dislike_count", +1)
	mock.ExpectCommit()

	outcome, err := repo.Toggle(7, 5, domain.ReactionDislike)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeSwitched, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_SwitchDislikeToLikeAdjustsBothCounters(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 2)
	expectExistingReaction(mock, 11, 7, 5, domain.ReactionDislike)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `movie_reactions` SET `kind`=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCountAdjust(mock, "dislike_count", -1)
	expectCountAdjust(mock, "like_count", +1)
	mock.ExpectCommit()

	outcome, err := repo.Toggle(7, 5, domain.ReactionLike)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeSwitched, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_SelfReactionRollsBack(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	expectMovieLock(mock, 7, 5)
	mock.ExpectRollback()

	_, err := repo.Toggle(7, 5, domain.ReactionLike)

	assert.ErrorIs(t, err, common.ErrSelfReaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_MissingMovieRollsBack(t *testing.T) {
	repo, mock := setupReactionRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id`,`author_id` FROM `movies` WHERE .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id"}))
	mock.ExpectRollback()

	_, err := repo.Toggle(404, 5, domain.ReactionLike)

	assert.ErrorIs(t, err, common.ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
