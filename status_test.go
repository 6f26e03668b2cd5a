package blognova

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, 200, ErrorCode(nil))
	assert.Equal(t, 404, ErrorCode(ErrNotFound))
	assert.Equal(t, 400, ErrorCode(Statusf(400, "bad field %q", "title")))
	assert.Equal(t, 500, ErrorCode(errors.New("some random error")))

	wrapped := fmt.Errorf("context: %w", ErrNotFound)
	assert.Equal(t, 404, ErrorCode(wrapped))
}

func TestWrapError(t *testing.T) {
	base := Statusf(404, "Post not found")
	err := WrapError(base, "Couldn't load post")
	assert.Equal(t, 404, err.Code)
	assert.Equal(t, "Couldn't load post", err.Error())
	assert.True(t, errors.Is(err, base))

	plain := WrapError(errors.New("pq: connection refused"), "Couldn't load post")
	assert.Equal(t, 500, plain.Code)
}
