package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 10, 1, 10},
		{"limit capped", 2, 200, 2, 50},
		{"valid untouched", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pagination{Page: tt.page, Limit: tt.limit}
			p.Normalize()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	p := &Pagination{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
}

func TestPagination_Info(t *testing.T) {
	p := &Pagination{Page: 2, Limit: 10}
	info := p.Info(25)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, int64(25), info.TotalItems)
	assert.Equal(t, 10, info.ItemsPerPage)
}
