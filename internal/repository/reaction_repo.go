package repository

import (
	"errors"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleOutcome describes what a toggle did
type ToggleOutcome string

const (
	OutcomeAdded    ToggleOutcome = "added"
	OutcomeRemoved  ToggleOutcome = "removed"
	OutcomeSwitched ToggleOutcome = "switched"
)

// ReactionRepository handles reaction persistence
type ReactionRepository interface {
	Toggle(movieID, userID uint, kind domain.ReactionKind) (ToggleOutcome, error)
	GetStatus(movieID, userID uint) (*domain.ReactionStatus, error)
	FindUserReactions(userID uint, movieIDs []uint) (map[uint]domain.ReactionKind, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func countColumn(kind domain.ReactionKind) string {
	if kind == domain.ReactionDislike {
		return "dislike_count"
	}
	return "like_count"
}

// Toggle applies one like/dislike action as a single transaction. The movie
// row is locked first, so the author check, the membership change and both
// cached counters commit together — a switch is never observable as a
// transient both-sets state.
func (r *reactionRepository) Toggle(movieID, userID uint, kind domain.ReactionKind) (ToggleOutcome, error) {
	var outcome ToggleOutcome

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var movie domain.Movie
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "author_id").
			First(&movie, movieID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrMovieNotFound
		}
		if err != nil {
			return err
		}

		if movie.AuthorID == userID {
			return common.ErrSelfReaction
		}

		var existing domain.Reaction
		err = tx.Where("movie_id = ? AND user_id = ?", movieID, userID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// NONE -> LIKED / NONE -> DISLIKED
			reaction := &domain.Reaction{
				MovieID: movieID,
				UserID:  userID,
				Kind:    kind,
			}
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
			if err := adjustCount(tx, movieID, kind, +1); err != nil {
				return err
			}
			outcome = OutcomeAdded

		case err != nil:
			return err

		case existing.Kind == kind:
			// LIKED -> NONE / DISLIKED -> NONE (toggle-off)
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := adjustCount(tx, movieID, kind, -1); err != nil {
				return err
			}
			outcome = OutcomeRemoved

		default:
			// LIKED -> DISLIKED / DISLIKED -> LIKED
			if err := tx.Model(&existing).Update("kind", kind).Error; err != nil {
				return err
			}
			if err := adjustCount(tx, movieID, kind.Opposite(), -1); err != nil {
				return err
			}
			if err := adjustCount(tx, movieID, kind, +1); err != nil {
				return err
			}
			outcome = OutcomeSwitched
		}

		return nil
	})

	return outcome, err
}

// adjustCount moves a cached counter, clamping decrements at zero
func adjustCount(tx *gorm.DB, movieID uint, kind domain.ReactionKind, delta int) error {
	column := countColumn(kind)
	expr := gorm.Expr(column + " + 1")
	if delta < 0 {
		expr = gorm.Expr("GREATEST(" + column + " - 1, 0)")
	}
	return tx.Model(&domain.Movie{}).
		Where("id = ?", movieID).
		UpdateColumn(column, expr).Error
}

// GetStatus returns the current counts plus the given user's state.
// userID 0 means anonymous.
func (r *reactionRepository) GetStatus(movieID, userID uint) (*domain.ReactionStatus, error) {
	var movie domain.Movie
	err := r.db.Select("id", "like_count", "dislike_count").
		First(&movie, movieID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}

	status := &domain.ReactionStatus{
		MovieID:  movieID,
		Likes:    movie.LikeCount,
		Dislikes: movie.DislikeCount,
	}

	if userID != 0 {
		var reaction domain.Reaction
		err = r.db.Where("movie_id = ? AND user_id = ?", movieID, userID).
			First(&reaction).Error
		if err == nil {
			status.UserLiked = reaction.Kind == domain.ReactionLike
			status.UserDisliked = reaction.Kind == domain.ReactionDislike
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return status, nil
}

// FindUserReactions returns the user's reaction kind for each of the given
// movies, for annotating listing pages in one query.
func (r *reactionRepository) FindUserReactions(userID uint, movieIDs []uint) (map[uint]domain.ReactionKind, error) {
	result := make(map[uint]domain.ReactionKind)
	if userID == 0 || len(movieIDs) == 0 {
		return result, nil
	}

	var reactions []domain.Reaction
	err := r.db.Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}

	for _, reaction := range reactions {
		result[reaction.MovieID] = reaction.Kind
	}
	return result, nil
}
