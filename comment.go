package blognova

import "time"

// Comment's author and post are fixed at creation time and never reassigned.
type Comment struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	AuthorID int `json:"author_id" db:"author_id"`
	PostID   int `json:"post_id" db:"post_id"`

	Text string `json:"text"`
}

type CommentFilter struct {
	ID       *int `json:"id"`
	AuthorID *int `json:"author_id"`
	PostID   *int `json:"post_id"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// CommentUpdate only carries the text: everything else on a comment is
// immutable.
type CommentUpdate struct {
	Text *string `json:"text"`
}
