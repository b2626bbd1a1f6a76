package domain

import "time"

// Movie review record. LikeCount/DislikeCount are cached aggregates kept in
// step with the movie_reactions table inside the toggle transaction; the
// reaction rows remain the source of truth.
type Movie struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID     uint      `gorm:"column:author_id;index;not null" json:"author_id"`
	Title        string    `gorm:"column:title;size:255;not null" json:"title"`
	Description  string    `gorm:"column:description;size:2048;not null" json:"description"`
	Genre        string    `gorm:"column:genre;size:255" json:"genre,omitempty"`
	Year         int       `gorm:"column:year;not null" json:"year"`
	CoverKey     string    `gorm:"column:cover_key;size:512" json:"-"`
	CoverURL     string    `gorm:"column:cover_url;size:1024" json:"cover_url,omitempty"`
	LikeCount    int       `gorm:"column:like_count;not null;default:0" json:"likes"`
	DislikeCount int       `gorm:"column:dislike_count;not null;default:0" json:"dislikes"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Movie) TableName() string {
	return "movies"
}

// CreateMovieRequest is the payload for posting a new review
type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=2048"`
	Genre       string `json:"genre" binding:"omitempty,max=255"`
	Year        int    `json:"year" binding:"required,min=1878,max=3000"`
}

// UpdateMovieRequest is the payload for editing an existing review
type UpdateMovieRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=2048"`
	Genre       string `json:"genre" binding:"omitempty,max=255"`
	Year        int    `json:"year" binding:"required,min=1878,max=3000"`
}

// MovieResponse is a movie as seen by a particular viewer. The permission
// flags mirror what the server-rendered frontend needs per row: authors may
// edit/delete but never react, everyone else reacts with their current
// state reflected.
type MovieResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Genre        string    `json:"genre,omitempty"`
	Year         int       `json:"year"`
	AuthorID     uint      `json:"author_id"`
	AuthorName   string    `json:"author_name,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	UserLiked    bool      `json:"user_liked"`
	UserDisliked bool      `json:"user_disliked"`
	CanEdit      bool      `json:"can_edit"`
	CanDelete    bool      `json:"can_delete"`
	CanLike      bool      `json:"can_like"`
	CanDislike   bool      `json:"can_dislike"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse builds the viewer-independent part of the response
func (m *Movie) ToResponse() *MovieResponse {
	resp := &MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		Year:        m.Year,
		AuthorID:    m.AuthorID,
		CoverURL:    m.CoverURL,
		Likes:       m.LikeCount,
		Dislikes:    m.DislikeCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Author != nil {
		resp.AuthorName = m.Author.Username
	}
	return resp
}

// MovieFilter is a recognized listing sort/filter key
type MovieFilter string

const (
	FilterDefault       MovieFilter = ""               // id ascending
	FilterDate          MovieFilter = "date"           // created_at ascending
	FilterPublishedDate MovieFilter = "published_date" // year ascending
	FilterReleasedDate  MovieFilter = "released_date"  // alias of published_date
	FilterLikes         MovieFilter = "likes"          // like_count descending
	FilterDislikes      MovieFilter = "dislikes"       // dislike_count descending
	FilterByCurrentUser MovieFilter = "by_current_user"
)

// ListQuery carries the resolved listing parameters
type ListQuery struct {
	Filter   MovieFilter
	AuthorID uint // 0 = no author restriction
	Page     int
	Limit    int
}
