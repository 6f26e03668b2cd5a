package sudoapi

import (
	"testing"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/stretchr/testify/assert"
)

func TestIsPostVisible(t *testing.T) {
	base := &BaseAPI{}
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	author := &blognova.User{ID: 1, Name: "author"}
	other := &blognova.User{ID: 2, Name: "other"}
	liveCat := &blognova.Category{ID: 1, Published: true}
	hiddenCat := &blognova.Category{ID: 2, Published: false}

	live := &blognova.Post{ID: 1, AuthorID: 1, Published: true, PubDate: now.Add(-time.Hour)}
	draft := &blognova.Post{ID: 2, AuthorID: 1, Published: false, PubDate: now.Add(-time.Hour)}
	scheduled := &blognova.Post{ID: 3, AuthorID: 1, Published: true, PubDate: now.Add(time.Hour)}

	// live post in a live category is visible to everyone
	assert.True(t, base.IsPostVisible(nil, live, liveCat, now))
	assert.True(t, base.IsPostVisible(other, live, liveCat, now))

	// hidden in all its forms for non-authors
	assert.False(t, base.IsPostVisible(other, draft, liveCat, now))
	assert.False(t, base.IsPostVisible(other, scheduled, liveCat, now))
	assert.False(t, base.IsPostVisible(other, live, hiddenCat, now))
	assert.False(t, base.IsPostVisible(other, live, nil, now))
	assert.False(t, base.IsPostVisible(nil, draft, liveCat, now))

	// the author sees every one of their own posts
	assert.True(t, base.IsPostVisible(author, draft, liveCat, now))
	assert.True(t, base.IsPostVisible(author, scheduled, liveCat, now))
	assert.True(t, base.IsPostVisible(author, live, hiddenCat, now))
	assert.True(t, base.IsPostVisible(author, live, nil, now))

	assert.False(t, base.IsPostVisible(author, nil, liveCat, now))
}

func TestIsPostEditor(t *testing.T) {
	base := &BaseAPI{}
	post := &blognova.Post{ID: 1, AuthorID: 1}

	assert.True(t, base.IsPostEditor(&blognova.User{ID: 1}, post))
	assert.False(t, base.IsPostEditor(&blognova.User{ID: 2}, post))
	assert.False(t, base.IsPostEditor(nil, post))
	assert.False(t, base.IsPostEditor(&blognova.User{ID: 1}, nil))
}

func TestIsCommentEditor(t *testing.T) {
	base := &BaseAPI{}
	comment := &blognova.Comment{ID: 1, AuthorID: 5, PostID: 1}

	assert.True(t, base.IsCommentEditor(&blognova.User{ID: 5}, comment))
	assert.False(t, base.IsCommentEditor(&blognova.User{ID: 6}, comment))
	assert.False(t, base.IsCommentEditor(nil, comment))
	assert.False(t, base.IsCommentEditor(&blognova.User{ID: 5}, nil))
}

func TestIsProfileOwner(t *testing.T) {
	base := &BaseAPI{}
	profile := &blognova.User{ID: 3, Name: "someone"}

	assert.True(t, base.IsProfileOwner(&blognova.User{ID: 3}, profile))
	assert.False(t, base.IsProfileOwner(&blognova.User{ID: 4}, profile))
	assert.False(t, base.IsProfileOwner(nil, profile))
	assert.False(t, base.IsProfileOwner(&blognova.User{ID: 3}, nil))
}
