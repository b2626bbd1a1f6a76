package service

import (
	"context"

	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/movierama/movierama-backend/internal/middleware"
	"github.com/movierama/movierama-backend/internal/repository"
	pkgcache "github.com/movierama/movierama-backend/pkg/cache"
	pkglogger "github.com/movierama/movierama-backend/pkg/logger"
)

// ReactionService is the like/dislike toggle engine. Per (movie, user) the
// state machine is NONE -> LIKED, NONE -> DISLIKED, LIKED -> NONE,
// DISLIKED -> NONE, LIKED -> DISLIKED, DISLIKED -> LIKED; repeating an
// action reverts it, switching is a single atomic transition.
type ReactionService interface {
	React(movieID, actorID uint, kind domain.ReactionKind) (*domain.ReactionStatus, error)
	GetStatus(movieID, viewerID uint) (*domain.ReactionStatus, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	cache        pkgcache.Service
}

// NewReactionService creates a new ReactionService
func NewReactionService(reactionRepo repository.ReactionRepository, cache pkgcache.Service) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		cache:        cache,
	}
}

// React toggles the actor's reaction of the given kind. The repository runs
// the author check and the mutation in one transaction, so self-reactions
// and races against a concurrent delete fail cleanly with no partial state.
func (s *reactionService) React(movieID, actorID uint, kind domain.ReactionKind) (*domain.ReactionStatus, error) {
	outcome, err := s.reactionRepo.Toggle(movieID, actorID, kind)
	if err != nil {
		return nil, err
	}

	middleware.CountReaction(string(kind), string(outcome))

	switch outcome {
	case repository.OutcomeAdded:
		pkglogger.WithUserID(actorID).Info().
			Uint("movie_id", movieID).Str("kind", string(kind)).
			Msg("added reaction from user")
	case repository.OutcomeRemoved:
		pkglogger.WithUserID(actorID).Info().
			Uint("movie_id", movieID).Str("kind", string(kind)).
			Msg("reverted reaction from user")
	case repository.OutcomeSwitched:
		pkglogger.WithUserID(actorID).Info().
			Uint("movie_id", movieID).Str("kind", string(kind)).
			Msg("switched reaction from user")
	}

	s.invalidate(movieID)

	return s.reactionRepo.GetStatus(movieID, actorID)
}

// GetStatus returns the counts and the viewer's current state
func (s *reactionService) GetStatus(movieID, viewerID uint) (*domain.ReactionStatus, error) {
	return s.reactionRepo.GetStatus(movieID, viewerID)
}

func (s *reactionService) invalidate(movieID uint) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	ctx := context.Background()
	_ = s.cache.InvalidateMovie(ctx, movieID)
	_ = s.cache.InvalidateMovies(ctx)
}
