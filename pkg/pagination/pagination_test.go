package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero values", Params{}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"negative page", Params{Page: -2, PerPage: 5}, Params{Page: 1, PerPage: 5}},
		{"too large", Params{Page: 3, PerPage: 500}, Params{Page: 3, PerPage: MaxPerPage}},
		{"valid", Params{Page: 2, PerPage: 20}, Params{Page: 2, PerPage: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestNewResult(t *testing.T) {
	p := &Params{Page: 2, PerPage: 10}
	r := NewResult(make([]int, 10), p, 25)

	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 3, r.Pagination.TotalPages)
	assert.Equal(t, int64(11), r.Pagination.From)
	assert.Equal(t, int64(20), r.Pagination.To)
	assert.True(t, r.Pagination.HasNext)
	assert.True(t, r.Pagination.HasPrev)

	last := NewResult(make([]int, 5), &Params{Page: 3, PerPage: 10}, 25)
	assert.False(t, last.Pagination.HasNext)
	assert.Equal(t, int64(25), last.Pagination.To)
}

func TestNewResultEmpty(t *testing.T) {
	r := NewResult[string](nil, Defaults(), 0)

	assert.NotNil(t, r.Items)
	assert.Zero(t, r.Pagination.TotalPages)
	assert.Zero(t, r.Pagination.From)
	assert.False(t, r.Pagination.HasNext)
	assert.False(t, r.Pagination.HasPrev)
}
