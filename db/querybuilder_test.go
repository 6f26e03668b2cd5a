package db

import (
	"testing"

	"github.com/KiloProjects/blognova"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBuilder(t *testing.T) {
	fb := newFilterBuilder()
	assert.Equal(t, "1 = 1", fb.Where())
	assert.Empty(t, fb.Args())

	fb.AddConstraint("author_id = %s", 4)
	fb.AddConstraint("published = true")
	fb.AddConstraint("pub_date <= %s AND id <> %s", "now", 9)

	assert.Equal(t, "author_id = $1 AND published = true AND pub_date <= $2 AND id <> $3", fb.Where())
	assert.Equal(t, []any{4, "now", 9}, fb.Args())
}

func TestUpdateBuilder(t *testing.T) {
	ub := newUpdateBuilder()
	require.ErrorIs(t, ub.CheckUpdates(), blognova.ErrNoUpdates)

	ub.AddUpdate("title = %s", "new title")
	ub.AddUpdate("published = %s", true)
	require.NoError(t, ub.CheckUpdates())
	assert.Equal(t, "title = $1, published = $2", ub.ToUpdate())

	// the filter continues the positional numbering after the updates
	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", 7)
	assert.Equal(t, "title = $1, published = $2 WHERE id = $3", fb.WithUpdate())
	assert.Equal(t, []any{"new title", true, 7}, fb.Args())
}
