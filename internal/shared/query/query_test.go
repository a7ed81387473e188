package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    int
	Name  string
	Score int
}

var testTable = Table[record]{
	Keys: map[string]Less[record]{
		"name":  func(a, b record) bool { return a.Name < b.Name },
		"score": func(a, b record) bool { return a.Score > b.Score },
	},
	Tie: func(a, b record) bool { return a.ID < b.ID },
}

func records() []record {
	return []record{
		{ID: 3, Name: "charlie", Score: 10},
		{ID: 1, Name: "alpha", Score: 30},
		{ID: 4, Name: "bravo", Score: 10},
		{ID: 2, Name: "bravo", Score: 20},
	}
}

func TestRunSorting(t *testing.T) {
	tests := []struct {
		name    string
		sort    string
		wantIDs []int
	}{
		{
			name:    "by name with id tie-break",
			sort:    "name",
			wantIDs: []int{1, 2, 4, 3},
		},
		{
			name:    "by score descending with id tie-break",
			sort:    "score",
			wantIDs: []int{1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testTable.Run(records(), Params{Sort: tt.sort, Limit: 50})
			require.NoError(t, err)

			gotIDs := make([]int, len(got))
			for i, r := range got {
				gotIDs[i] = r.ID
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	in := records()
	_, err := testTable.Run(in, Params{Sort: "name", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, records(), in)
}

func TestRunPagination(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		offset  int
		wantIDs []int
	}{
		{name: "first page", limit: 2, offset: 0, wantIDs: []int{1, 2}},
		{name: "second page", limit: 2, offset: 2, wantIDs: []int{4, 3}},
		{name: "offset beyond end", limit: 2, offset: 10, wantIDs: []int{}},
		{name: "zero limit", limit: 0, offset: 0, wantIDs: []int{}},
		{name: "limit beyond end", limit: 100, offset: 3, wantIDs: []int{3}},
		{name: "maximum limit", limit: math.MaxInt, offset: 0, wantIDs: []int{1, 2, 4, 3}},
		{name: "maximum limit with offset", limit: math.MaxInt, offset: 1, wantIDs: []int{2, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testTable.Run(records(), Params{Sort: "name", Limit: tt.limit, Offset: tt.offset})
			require.NoError(t, err)

			gotIDs := make([]int, 0, len(got))
			for _, r := range got {
				gotIDs = append(gotIDs, r.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

// list(limit=a+b, offset=o)[a:] == list(limit=b, offset=o+a)
func TestRunPaginationLaw(t *testing.T) {
	for _, a := range []int{0, 1, 2} {
		for _, b := range []int{0, 1, 3} {
			for _, o := range []int{0, 1, 2} {
				whole, err := testTable.Run(records(), Params{Sort: "name", Limit: a + b, Offset: o})
				require.NoError(t, err)
				part, err := testTable.Run(records(), Params{Sort: "name", Limit: b, Offset: o + a})
				require.NoError(t, err)

				if a > len(whole) {
					assert.Empty(t, part)
					continue
				}
				assert.Equal(t, whole[a:], part, "a=%d b=%d o=%d", a, b, o)
			}
		}
	}
}

func TestRunInvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "unknown sort", params: Params{Sort: "bogus", Limit: 10}, wantErr: ErrUnknownSort},
		{name: "negative limit", params: Params{Sort: "name", Limit: -1}, wantErr: ErrNegativeLimit},
		{name: "negative offset", params: Params{Sort: "name", Limit: 10, Offset: -3}, wantErr: ErrNegativeOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testTable.Run(records(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("The Big Heist", ""))
	assert.True(t, ContainsFold("The Big Heist", "big"))
	assert.True(t, ContainsFold("The Big Heist", "HEIST"))
	assert.True(t, ContainsFold("The Big Heist", "g h"))
	assert.False(t, ContainsFold("The Big Heist", "quiet"))
	assert.False(t, ContainsFold("", "x"))
}
