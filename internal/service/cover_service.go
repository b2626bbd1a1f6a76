package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/repository"
	pkgcache "github.com/movierama/movierama-backend/pkg/cache"
	pkglogger "github.com/movierama/movierama-backend/pkg/logger"
	pkgstorage "github.com/movierama/movierama-backend/pkg/storage"
)

// maxCoverSize caps cover uploads at 5 MiB
const maxCoverSize = 5 << 20

// CoverService manages optional movie cover images on object storage.
// Author-only, like every other movie mutation.
type CoverService interface {
	UploadCover(ctx context.Context, movieID, actorID uint, file *multipart.FileHeader) (string, error)
	RemoveCover(ctx context.Context, movieID, actorID uint) error
}

type coverService struct {
	movieRepo repository.MovieRepository
	storage   *pkgstorage.S3Client
	cache     pkgcache.Service
}

// NewCoverService creates a new CoverService. storage may be nil when no
// object storage is configured; uploads then fail with a clear error.
func NewCoverService(movieRepo repository.MovieRepository, storage *pkgstorage.S3Client, cache pkgcache.Service) CoverService {
	return &coverService{
		movieRepo: movieRepo,
		storage:   storage,
		cache:     cache,
	}
}

// UploadCover stores the image and records its URL on the movie
func (s *coverService) UploadCover(ctx context.Context, movieID, actorID uint, file *multipart.FileHeader) (string, error) {
	ownerID, err := s.movieRepo.GetAuthorID(movieID)
	if err != nil {
		return "", err
	}
	if ownerID != actorID {
		return "", common.ErrNotAuthor
	}

	if s.storage == nil {
		return "", common.ErrStorageUnavailable
	}

	if file.Size > maxCoverSize {
		return "", fmt.Errorf("%w: cover exceeds %d bytes", common.ErrInvalidInput, maxCoverSize)
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: cover must be an image", common.ErrInvalidInput)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := pkgstorage.GenerateKey(fmt.Sprintf("movie_%d", movieID), file.Filename)
	result, err := s.storage.Upload(ctx, key, src, contentType, file.Size)
	if err != nil {
		return "", err
	}

	// Replace a previous cover, if any
	if movie, ferr := s.movieRepo.FindByID(movieID); ferr == nil && movie.CoverKey != "" {
		if derr := s.storage.Delete(ctx, movie.CoverKey); derr != nil {
			pkglogger.GetLogger().Warn().Err(derr).
				Str("key", movie.CoverKey).Msg("failed to delete previous cover")
		}
	}

	if err := s.movieRepo.SetCover(movieID, result.Key, result.URL); err != nil {
		return "", err
	}

	s.invalidate(ctx, movieID)
	return result.URL, nil
}

// RemoveCover deletes the stored image and clears the movie's cover fields
func (s *coverService) RemoveCover(ctx context.Context, movieID, actorID uint) error {
	ownerID, err := s.movieRepo.GetAuthorID(movieID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return common.ErrNotAuthor
	}

	movie, err := s.movieRepo.FindByID(movieID)
	if err != nil {
		return err
	}

	if movie.CoverKey != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, movie.CoverKey); err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("key", movie.CoverKey).Msg("failed to delete cover object")
		}
	}

	if err := s.movieRepo.SetCover(movieID, "", ""); err != nil {
		return err
	}

	s.invalidate(ctx, movieID)
	return nil
}

func (s *coverService) invalidate(ctx context.Context, movieID uint) {
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateMovie(ctx, movieID)
		_ = s.cache.InvalidateMovies(ctx)
	}
}
