package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePageMetadata(t *testing.T) {
	tests := []struct {
		name               string
		total, page, size  int
		wantPages          int
		wantNext, wantPrev bool
	}{
		{"empty", 0, 1, 20, 0, false, false},
		{"single partial page", 5, 1, 20, 1, false, false},
		{"exact multiple", 40, 1, 20, 2, true, false},
		{"middle page", 45, 2, 20, 3, true, true},
		{"last page", 45, 3, 20, 3, false, true},
		{"beyond last page", 45, 5, 20, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePageMetadata(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantNext, meta.HasNextPage)
			assert.Equal(t, tt.wantPrev, meta.HasPreviousPage)
			assert.Equal(t, tt.total, meta.TotalCount)
			assert.Equal(t, tt.page, meta.PageNumber)
			assert.Equal(t, tt.size, meta.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 0, Offset(0, 20))
}
