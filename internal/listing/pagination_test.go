package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_Defaults(t *testing.T) {
	p := ParsePage("", "")
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPage_ClampsInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
		wantOffset  int
	}{
		{"zero page", 0, 10, 1, 10, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"zero limit", 2, 0, 2, 20, 20},
		{"negative limit", 2, -5, 2, 20, 20},
		{"huge limit", 1, 5000, 1, 100, 0},
		{"third page", 3, 2, 3, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestParsePage_NonNumeric(t *testing.T) {
	p := ParsePage("two", "ten")
	assert.Equal(t, NewPage(1, 20), p)
}

func TestPages_IsCeiling(t *testing.T) {
	p := NewPage(1, 2)
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(2))
	assert.Equal(t, 3, p.Pages(5))

	for total := int64(1); total <= 250; total++ {
		for _, limit := range []int{1, 3, 7, 20, 100} {
			pages := NewPage(1, limit).Pages(total)
			assert.GreaterOrEqual(t, int64(pages*limit), total)
			assert.Less(t, int64((pages-1)*limit), total)
		}
	}
}

func TestDescribe(t *testing.T) {
	got := NewPage(1, 2).Describe(5)
	assert.Equal(t, Pagination{Page: 1, Limit: 2, Total: 5, Pages: 3}, got)
}
