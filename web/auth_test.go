package web

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackURL(t *testing.T) {
	tests := []struct {
		back string
		want string
	}{
		{"", "/"},
		{"/posts/3", "/posts/3"},
		{"/profile/someone", "/profile/someone"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{"posts/3", "/"},
	}
	for _, test := range tests {
		form := url.Values{"back": {test.back}}
		r := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, test.want, backURL(r), "back=%q", test.back)
	}
}
