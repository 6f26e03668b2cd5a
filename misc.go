package blognova

import (
	"math/rand"
	"strings"

	"github.com/gosimple/slug"
)

const randomCharacters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a new string of a specified size containing only [a-zA-Z0-9] characters
func RandomString(size int) string {
	sb := strings.Builder{}
	sb.Grow(size)
	for ; size > 0; size-- {
		sb.WriteByte(randomCharacters[rand.Intn(len(randomCharacters))])
	}
	return sb.String()
}

// MakeSlug normalizes a string for URL use.
func MakeSlug(s string) string {
	return slug.Make(s)
}
