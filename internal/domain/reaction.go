package domain

import "time"

// ReactionKind is one of the two reaction flags
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid reports whether the kind is one of the two known flags
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Opposite returns the other kind
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// Reaction is a single user's like or dislike on one movie. The unique
// (movie_id, user_id) index enforces at most one active reaction per pair,
// which also closes the same-user double-submit race at the storage layer.
type Reaction struct {
	ID        uint         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MovieID   uint         `gorm:"column:movie_id;uniqueIndex:idx_movie_user;not null" json:"movie_id"`
	UserID    uint         `gorm:"column:user_id;uniqueIndex:idx_movie_user;not null" json:"user_id"`
	Kind      ReactionKind `gorm:"column:kind;size:10;not null" json:"kind"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Reaction) TableName() string {
	return "movie_reactions"
}

// ReactionStatus is returned after a toggle or status read
type ReactionStatus struct {
	MovieID      uint `json:"movie_id"`
	Likes        int  `json:"likes"`
	Dislikes     int  `json:"dislikes"`
	UserLiked    bool `json:"user_liked"`
	UserDisliked bool `json:"user_disliked"`
}
