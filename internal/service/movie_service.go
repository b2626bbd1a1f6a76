package service

import (
	"context"
	"fmt"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/movierama/movierama-backend/internal/repository"
	pkgcache "github.com/movierama/movierama-backend/pkg/cache"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// MovieService covers the movie CRUD surface plus the listing filter.
// viewerID 0 means an anonymous caller throughout.
type MovieService interface {
	ListMovies(filter string, authorID, viewerID uint, page, limit int) ([]*domain.MovieResponse, *common.Meta, error)
	GetMovie(id, viewerID uint) (*domain.MovieResponse, error)
	CreateMovie(authorID uint, req *domain.CreateMovieRequest) (*domain.MovieResponse, error)
	UpdateMovie(id, actorID uint, req *domain.UpdateMovieRequest) (*domain.MovieResponse, error)
	DeleteMovie(id, actorID uint) error
}

type movieService struct {
	movieRepo    repository.MovieRepository
	reactionRepo repository.ReactionRepository
	cache        pkgcache.Service
}

// NewMovieService creates a new MovieService
func NewMovieService(movieRepo repository.MovieRepository, reactionRepo repository.ReactionRepository, cache pkgcache.Service) MovieService {
	return &movieService{
		movieRepo:    movieRepo,
		reactionRepo: reactionRepo,
		cache:        cache,
	}
}

// resolveFilter maps the raw query value onto a known sort key.
// Unknown values fall back to insertion order.
func resolveFilter(filter string) domain.MovieFilter {
	switch domain.MovieFilter(filter) {
	case domain.FilterDate, domain.FilterPublishedDate, domain.FilterReleasedDate,
		domain.FilterLikes, domain.FilterDislikes, domain.FilterByCurrentUser:
		return domain.MovieFilter(filter)
	default:
		return domain.FilterDefault
	}
}

// ListMovies returns one page of movies with per-viewer permission flags.
// filter=by_current_user restricts to the viewer's own movies (an anonymous
// viewer matches nothing); an explicit author id restricts independently of
// the sort key and wins over the viewer-derived restriction.
func (s *movieService) ListMovies(filter string, authorID, viewerID uint, page, limit int) ([]*domain.MovieResponse, *common.Meta, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	resolved := resolveFilter(filter)

	q := domain.ListQuery{
		Filter:   resolved,
		AuthorID: authorID,
		Page:     page,
		Limit:    limit,
	}
	// An explicit author param wins over the viewer-derived restriction.
	if resolved == domain.FilterByCurrentUser && q.AuthorID == 0 {
		if viewerID == 0 {
			// anonymous caller authored nothing
			return []*domain.MovieResponse{}, &common.Meta{Filter: filter, Page: page, Limit: limit}, nil
		}
		q.AuthorID = viewerID
	}

	// Anonymous pages are cacheable; authenticated ones carry viewer flags.
	cacheKey := fmt.Sprintf("%s:%d:%d:%d", resolved, q.AuthorID, page, limit)
	if viewerID == 0 && s.cacheAvailable() {
		var cached struct {
			Movies []*domain.MovieResponse `json:"movies"`
			Total  int64                   `json:"total"`
		}
		if err := s.cache.GetMovies(context.Background(), cacheKey, &cached); err == nil {
			return cached.Movies, &common.Meta{Filter: filter, Page: page, Limit: limit, Total: cached.Total}, nil
		}
	}

	movies, total, err := s.movieRepo.List(q)
	if err != nil {
		return nil, nil, fmt.Errorf("list movies: %w", err)
	}

	responses, err := s.buildResponses(movies, viewerID)
	if err != nil {
		return nil, nil, err
	}

	if viewerID == 0 && s.cacheAvailable() {
		_ = s.cache.SetMovies(context.Background(), cacheKey, map[string]interface{}{
			"movies": responses,
			"total":  total,
		})
	}

	return responses, &common.Meta{Filter: filter, Page: page, Limit: limit, Total: total}, nil
}

func (s *movieService) GetMovie(id, viewerID uint) (*domain.MovieResponse, error) {
	// Only anonymous views are cacheable: the per-viewer flags vary otherwise.
	if viewerID == 0 && s.cacheAvailable() {
		var cached domain.MovieResponse
		if err := s.cache.GetMovie(context.Background(), id, &cached); err == nil {
			return &cached, nil
		}
	}

	movie, err := s.movieRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	responses, err := s.buildResponses([]*domain.Movie{movie}, viewerID)
	if err != nil {
		return nil, err
	}

	if viewerID == 0 && s.cacheAvailable() {
		_ = s.cache.SetMovie(context.Background(), id, responses[0])
	}
	return responses[0], nil
}

func (s *movieService) CreateMovie(authorID uint, req *domain.CreateMovieRequest) (*domain.MovieResponse, error) {
	movie := &domain.Movie{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Year:        req.Year,
	}

	if err := s.movieRepo.Create(movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.invalidateListings()

	resp := movie.ToResponse()
	resp.CanEdit = true
	resp.CanDelete = true
	return resp, nil
}

// UpdateMovie edits a movie. Only the author may do this; a missing movie is
// reported as not found before any authorization verdict.
func (s *movieService) UpdateMovie(id, actorID uint, req *domain.UpdateMovieRequest) (*domain.MovieResponse, error) {
	ownerID, err := s.movieRepo.GetAuthorID(id)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, common.ErrNotAuthor
	}

	movie := &domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Year:        req.Year,
	}
	if err := s.movieRepo.Update(id, movie); err != nil {
		return nil, err
	}

	s.invalidateMovie(id)

	return s.GetMovie(id, actorID)
}

func (s *movieService) DeleteMovie(id, actorID uint) error {
	ownerID, err := s.movieRepo.GetAuthorID(id)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return common.ErrNotAuthor
	}

	if err := s.movieRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateMovie(id)
	return nil
}

// buildResponses attaches the viewer-dependent flags: authors edit and
// delete but never react; everyone else reacts, with their current state
// reflected in the flags.
func (s *movieService) buildResponses(movies []*domain.Movie, viewerID uint) ([]*domain.MovieResponse, error) {
	ids := make([]uint, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}

	reactions, err := s.reactionRepo.FindUserReactions(viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("load viewer reactions: %w", err)
	}

	responses := make([]*domain.MovieResponse, len(movies))
	for i, m := range movies {
		resp := m.ToResponse()
		if viewerID != 0 {
			if m.AuthorID == viewerID {
				resp.CanEdit = true
				resp.CanDelete = true
			} else {
				kind, reacted := reactions[m.ID]
				resp.UserLiked = reacted && kind == domain.ReactionLike
				resp.UserDisliked = reacted && kind == domain.ReactionDislike
				resp.CanLike = true
				resp.CanDislike = true
			}
		}
		responses[i] = resp
	}
	return responses, nil
}

func (s *movieService) cacheAvailable() bool {
	return s.cache != nil && s.cache.IsAvailable()
}

func (s *movieService) invalidateListings() {
	if s.cacheAvailable() {
		_ = s.cache.InvalidateMovies(context.Background())
	}
}

func (s *movieService) invalidateMovie(id uint) {
	if s.cacheAvailable() {
		_ = s.cache.InvalidateMovie(context.Background(), id)
		_ = s.cache.InvalidateMovies(context.Background())
	}
}
