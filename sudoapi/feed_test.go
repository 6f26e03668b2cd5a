package sudoapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		page     int
		wantPage int
		wantNum  int
	}{
		{"empty feed still has one page", 0, 1, 1, 1},
		{"exact multiple", 30, 3, 3, 3},
		{"partial last page", 31, 4, 4, 4},
		{"page past the end clamps to last", 25, 99, 3, 3},
		{"zero page clamps to first", 25, 0, 1, 3},
		{"negative page clamps to first", 25, -5, 1, 3},
		{"single item", 1, 1, 1, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			page, numPages := clampPage(test.count, test.page, 10)
			assert.Equal(t, test.wantPage, page)
			assert.Equal(t, test.wantNum, numPages)
		})
	}
}
