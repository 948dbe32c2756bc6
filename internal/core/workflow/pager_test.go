package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(12, 5))
}

func TestSlicePartitionsCollection(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for _, rows := range []int{1, 3, 5, 10} {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			var seen []int
			for p := 1; p <= TotalPages(n, rows); p++ {
				page := Slice(items, p, rows)
				assert.LessOrEqual(t, len(page), rows)
				seen = append(seen, page...)
			}
			if n == 0 {
				assert.Empty(t, seen)
				continue
			}
			assert.Equal(t, items, seen, "n=%d rows=%d", n, rows)
		}
	}
}

func TestSliceOutOfRange(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Empty(t, Slice(items, 0, 5))
	assert.Empty(t, Slice(items, 2, 5))
}

func pages(links []PageLink) []int {
	out := make([]int, 0, len(links))
	for _, l := range links {
		if l.Ellipsis {
			out = append(out, 0)
			continue
		}
		out = append(out, l.Page)
	}
	return out
}

func TestWindow(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		assert.Equal(t, []int{1}, pages(Window(1, 1)))
	})

	t.Run("middle of a long range", func(t *testing.T) {
		assert.Equal(t, []int{1, 0, 4, 5, 6, 7, 8, 0, 12}, pages(Window(6, 12)))
	})

	t.Run("no ellipsis without a gap", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, pages(Window(4, 6)))
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, pages(Window(4, 7)))
	})

	t.Run("near the ends", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 0, 10}, pages(Window(1, 10)))
		assert.Equal(t, []int{1, 0, 8, 9, 10}, pages(Window(10, 10)))
	})

	t.Run("current page is marked", func(t *testing.T) {
		for _, l := range Window(3, 9) {
			assert.Equal(t, l.Page == 3, l.Current)
		}
	})
}

func TestNewControls(t *testing.T) {
	c := NewControls(1, 1)
	assert.True(t, c.PrevDisabled)
	assert.True(t, c.NextDisabled)

	c = NewControls(2, 3)
	assert.False(t, c.PrevDisabled)
	assert.False(t, c.NextDisabled)

	c = NewControls(9, 3)
	assert.Equal(t, 3, c.Page)
	assert.True(t, c.NextDisabled)
}
