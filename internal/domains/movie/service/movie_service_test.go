package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogue-backend/internal/corpus/corpustest"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/domains/movie"
	"dialogue-backend/internal/shared/query"
)

func fixtureService(t *testing.T) MovieService {
	t.Helper()
	store := corpustest.NewStore(t)
	return NewMovieService(store, stats.New(store))
}

func TestListMovies(t *testing.T) {
	svc := fixtureService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     movie.ListMoviesRequest
		wantIDs []int
	}{
		{
			name:    "default title sort",
			req:     movie.ListMoviesRequest{Sort: movie.SortTitle, Limit: 50},
			wantIDs: []int{2, 1, 3},
		},
		{
			name:    "by year",
			req:     movie.ListMoviesRequest{Sort: movie.SortYear, Limit: 50},
			wantIDs: []int{2, 1, 3},
		},
		{
			name:    "by rating descending",
			req:     movie.ListMoviesRequest{Sort: movie.SortRating, Limit: 50},
			wantIDs: []int{2, 1, 3},
		},
		{
			name:    "case-insensitive substring filter",
			req:     movie.ListMoviesRequest{Name: "heist", Sort: movie.SortTitle, Limit: 50},
			wantIDs: []int{1},
		},
		{
			name:    "filter with no matches",
			req:     movie.ListMoviesRequest{Name: "zzz", Sort: movie.SortTitle, Limit: 50},
			wantIDs: []int{},
		},
		{
			name:    "paginated",
			req:     movie.ListMoviesRequest{Sort: movie.SortTitle, Limit: 1, Offset: 1},
			wantIDs: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.List(ctx, tt.req)
			require.NoError(t, err)

			gotIDs := make([]int, 0, len(items))
			for _, it := range items {
				gotIDs = append(gotIDs, it.MovieID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestListMoviesProjection(t *testing.T) {
	svc := fixtureService(t)

	items, err := svc.List(context.Background(), movie.ListMoviesRequest{
		Name: "Quiet", Sort: movie.SortTitle, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, movie.ListItem{
		MovieID:    2,
		MovieTitle: "Quiet Harbor",
		Year:       1987,
		IMDBRating: 8.1,
		IMDBVotes:  2500,
	}, items[0])
}

func TestListMoviesUnknownSort(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.List(context.Background(), movie.ListMoviesRequest{Sort: "bogus", Limit: 50})
	assert.ErrorIs(t, err, query.ErrUnknownSort)
}

func TestGetMovie(t *testing.T) {
	svc := fixtureService(t)

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, detail.MovieID)
	assert.Equal(t, "The Big Heist", detail.Title)
	require.Len(t, detail.TopCharacters, 3)
	assert.Equal(t, movie.TopCharacter{CharacterID: 10, Character: "ALICE", NumLines: 3}, detail.TopCharacters[0])
	assert.Equal(t, 11, detail.TopCharacters[1].CharacterID)
	assert.Equal(t, 12, detail.TopCharacters[2].CharacterID)
}

func TestGetMovieNotFound(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	assert.Equal(t, 404, movie.GetHTTPStatusCode(err))
}
