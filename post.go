package blognova

import "time"

type Post struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	AuthorID  int       `json:"author_id" db:"author_id"`

	Title string `json:"title"`
	Text  string `json:"text"`

	// PubDate may sit in the future for scheduled publications.
	PubDate   time.Time `json:"pub_date" db:"pub_date"`
	Published bool      `json:"published"`

	CategoryID *int `json:"category_id" db:"category_id"`
	LocationID *int `json:"location_id" db:"location_id"`

	ImageURL *string `json:"image_url" db:"image_url"`

	// CommentCount is a join aggregate, never stored on the row itself.
	CommentCount int `json:"comment_count" db:"comment_count"`
}

// VisibleAt reports whether the post is publicly visible at the given
// instant: it must be published, belong to a published category and its
// publication date must have passed. A post without a category is never
// publicly visible; its author still sees it through IsPostVisible.
func (p *Post) VisibleAt(category *Category, now time.Time) bool {
	if p == nil || category == nil {
		return false
	}
	return p.Published && category.Published && !p.PubDate.After(now)
}

// PostFilter is the struct with all filterable fields on posts.
type PostFilter struct {
	ID       *int  `json:"id"`
	IDs      []int `json:"ids"`
	AuthorID *int  `json:"author_id"`

	CategoryID   *int    `json:"category_id"`
	CategorySlug *string `json:"category_slug"`
	LocationID   *int    `json:"location_id"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`

	// Look restricts the result set to posts the looking user is allowed to
	// see: publicly visible ones, plus the user's own posts.
	Look        bool  `json:"-"`
	LookingUser *User `json:"-"`

	Ordering  string `json:"ordering"`
	Ascending bool   `json:"ascending"`
}

// PostUpdate is the struct with all updatable fields on posts.
type PostUpdate struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`

	PubDate   *time.Time `json:"pub_date"`
	Published *bool      `json:"published"`

	// Category/location/image are nullable columns, so updating them to
	// nothing is distinct from leaving them untouched.
	CategoryID  *int    `json:"category_id"`
	SetCategory bool    `json:"-"`
	LocationID  *int    `json:"location_id"`
	SetLocation bool    `json:"-"`
	ImageURL    *string `json:"image_url"`
	SetImage    bool    `json:"-"`
}

type Category struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Slug      string `json:"slug"` // unique, used in URL
	Published bool   `json:"published"`
}

type CategoryFilter struct {
	ID   *int    `json:"id"`
	Slug *string `json:"slug"`

	Published *bool `json:"published"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Location struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Name      string `json:"name"`
	Published bool   `json:"published"`
}

type LocationFilter struct {
	ID *int `json:"id"`

	Published *bool `json:"published"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
