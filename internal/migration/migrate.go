package migration

import (
	"github.com/movierama/movierama-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies the schema. Reaction deletes cascade with their movie; GORM's
// AutoMigrate creates the unique (movie_id, user_id) index from the model tags.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Movie{},
		&domain.Reaction{},
		&domain.OAuthAccount{},
	)
}
