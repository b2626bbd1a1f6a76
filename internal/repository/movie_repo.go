package repository

import (
	"errors"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"gorm.io/gorm"
)

// MovieRepository defines movie persistence operations
type MovieRepository interface {
	List(q domain.ListQuery) ([]*domain.Movie, int64, error)
	FindByID(id uint) (*domain.Movie, error)
	GetAuthorID(id uint) (uint, error)
	Create(movie *domain.Movie) error
	Update(id uint, movie *domain.Movie) error
	Delete(id uint) error
	SetCover(id uint, key, url string) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new MovieRepository
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// List returns one page of movies ordered by the requested filter plus the
// total count for the same restriction. Every ordering tie-breaks on id
// ascending; each call is a fresh snapshot.
func (r *movieRepository) List(q domain.ListQuery) ([]*domain.Movie, int64, error) {
	query := r.db.Model(&domain.Movie{})

	if q.AuthorID != 0 {
		query = query.Where("author_id = ?", q.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Filter {
	case domain.FilterDate:
		query = query.Order("created_at ASC, id ASC")
	case domain.FilterPublishedDate, domain.FilterReleasedDate:
		query = query.Order("year ASC, id ASC")
	case domain.FilterLikes:
		query = query.Order("like_count DESC, id ASC")
	case domain.FilterDislikes:
		query = query.Order("dislike_count DESC, id ASC")
	default:
		// insertion order; unknown filters land here too
		query = query.Order("id ASC")
	}

	offset := (q.Page - 1) * q.Limit

	var movies []*domain.Movie
	err := query.Preload("Author").
		Offset(offset).
		Limit(q.Limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *movieRepository) FindByID(id uint) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.db.Preload("Author").First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetAuthorID returns the owning identity of a movie
func (r *movieRepository) GetAuthorID(id uint) (uint, error) {
	var result struct {
		AuthorID uint `gorm:"column:author_id"`
	}
	err := r.db.Model(&domain.Movie{}).
		Select("author_id").
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, common.ErrMovieNotFound
	}
	if err != nil {
		return 0, err
	}
	return result.AuthorID, nil
}

func (r *movieRepository) Create(movie *domain.Movie) error {
	return r.db.Create(movie).Error
}

// Update rewrites the editable fields. The author and both counts are never
// touched here.
func (r *movieRepository) Update(id uint, movie *domain.Movie) error {
	result := r.db.Model(&domain.Movie{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       movie.Title,
			"description": movie.Description,
			"genre":       movie.Genre,
			"year":        movie.Year,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMovieNotFound
	}
	return nil
}

// Delete removes the movie and its reaction rows in one transaction
func (r *movieRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&domain.Reaction{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Movie{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrMovieNotFound
		}
		return nil
	})
}

func (r *movieRepository) SetCover(id uint, key, url string) error {
	result := r.db.Model(&domain.Movie{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cover_key": key,
			"cover_url": url,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMovieNotFound
	}
	return nil
}
