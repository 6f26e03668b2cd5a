package blognova

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostVisibleAt(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	cat := &Category{ID: 1, Title: "Travel", Slug: "travel", Published: true}

	post := &Post{ID: 1, Title: "Hello", Published: true, PubDate: now.Add(-time.Hour)}

	assert.True(t, post.VisibleAt(cat, now))

	t.Run("future pub date", func(t *testing.T) {
		scheduled := &Post{Published: true, PubDate: now.Add(time.Hour)}
		assert.False(t, scheduled.VisibleAt(cat, now))
		// becomes visible exactly at the publication instant
		assert.True(t, scheduled.VisibleAt(cat, now.Add(time.Hour)))
	})

	t.Run("unpublished post", func(t *testing.T) {
		draft := &Post{Published: false, PubDate: now.Add(-time.Hour)}
		assert.False(t, draft.VisibleAt(cat, now))
	})

	t.Run("unpublished category", func(t *testing.T) {
		hidden := &Category{ID: 2, Slug: "drafts", Published: false}
		assert.False(t, post.VisibleAt(hidden, now))
	})

	t.Run("missing category", func(t *testing.T) {
		assert.False(t, post.VisibleAt(nil, now))
	})

	t.Run("nil post", func(t *testing.T) {
		var p *Post
		assert.False(t, p.VisibleAt(cat, now))
	})
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "", (*User)(nil).DisplayName())
	assert.Equal(t, "ana", (&User{Name: "ana"}).DisplayName())
	assert.Equal(t, "Ana", (&User{Name: "ana", FirstName: "Ana"}).DisplayName())
	assert.Equal(t, "Ana Pop", (&User{Name: "ana", FirstName: "Ana", LastName: "Pop"}).DisplayName())
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "city-trips", MakeSlug("City Trips"))
	assert.Equal(t, "cafe-life", MakeSlug("Café Life"))
}

func TestRandomString(t *testing.T) {
	s := RandomString(16)
	assert.Len(t, s, 16)
	for _, c := range s {
		assert.Contains(t, randomCharacters, string(c))
	}
}
