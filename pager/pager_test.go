package pager

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 50, 2},
		{101, 50, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.size), "TotalPages(%d, %d)", tt.n, tt.size)
	}
}

func TestPaginateReconstructsSequence(t *testing.T) {
	for _, n := range []int{0, 1, 7, 20, 45} {
		for _, size := range []int{1, 3, 20} {
			rows := make([]int, n)
			for i := range rows {
				rows[i] = i
			}

			var joined []int
			for page := 1; page <= TotalPages(n, size); page++ {
				chunk, w := Paginate(rows, page, size)
				assert.Equal(t, page, w.Page)
				joined = append(joined, chunk...)
			}

			if n == 0 {
				assert.Equal(t, 0, len(joined))
				continue
			}
			assert.Equal(t, rows, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	rows := []string{"a", "b", "c", "d", "e"}

	chunk, w := Paginate(rows, 9, 2)
	assert.Equal(t, []string{"e"}, chunk)
	assert.Equal(t, 3, w.Page)
	assert.Equal(t, 3, w.TotalPages)
	assert.Equal(t, 5, w.TotalRows)

	chunk, w = Paginate(rows, -4, 2)
	assert.Equal(t, []string{"a", "b"}, chunk)
	assert.Equal(t, 1, w.Page)

	chunk, w = Paginate([]string{}, 3, 2)
	assert.Equal(t, 0, len(chunk))
	assert.Equal(t, 1, w.Page)
}

type sortRow struct {
	name   string
	date   time.Time
	amount decimal.Decimal
}

func (r sortRow) SortDate() time.Time         { return r.date }
func (r sortRow) SortAmount() decimal.Decimal { return r.amount }

func TestSort(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	rows := []sortRow{
		{"b", day(2), decimal.NewFromInt(30)},
		{"a", day(1), decimal.NewFromInt(10)},
		{"c", day(3), decimal.NewFromInt(10)},
	}
	names := func(rows []sortRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.name
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, names(Sort(rows, DateAsc)))
	assert.Equal(t, []string{"c", "b", "a"}, names(Sort(rows, DateDesc)))
	assert.Equal(t, []string{"a", "c", "b"}, names(Sort(rows, AmountAsc)))
	assert.Equal(t, []string{"b", "a", "c"}, names(Sort(rows, AmountDesc)))
	assert.Equal(t, []string{"b", "a", "c"}, names(Sort(rows, SortKey("bogus"))))

	// The input order is untouched.
	assert.Equal(t, []string{"b", "a", "c"}, names(rows))
}

func TestSortKeyValid(t *testing.T) {
	assert.True(t, DateAsc.Valid())
	assert.False(t, SortKey("").Valid())
}
