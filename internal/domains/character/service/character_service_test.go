package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogue-backend/internal/corpus/corpustest"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/domains/character"
)

func fixtureService(t *testing.T) CharacterService {
	t.Helper()
	store := corpustest.NewStore(t)
	return NewCharacterService(store, stats.New(store))
}

func TestListCharacters(t *testing.T) {
	svc := fixtureService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     character.ListCharactersRequest
		wantIDs []int
	}{
		{
			name:    "by name",
			req:     character.ListCharactersRequest{Sort: character.SortName, Limit: 50},
			wantIDs: []int{10, 11, 12, 20, 21, 49, 55, 56},
		},
		{
			name: "by movie title, character id tie-break",
			req:  character.ListCharactersRequest{Sort: character.SortMovie, Limit: 50},
			// Quiet Harbor (20,21), The Big Heist (10,11,12), Third Act (49,55,56)
			wantIDs: []int{20, 21, 10, 11, 12, 49, 55, 56},
		},
		{
			name: "by number of lines descending",
			req:  character.ListCharactersRequest{Sort: character.SortLines, Limit: 4},
			// ALICE 3 lines, then the one-line speakers by id.
			wantIDs: []int{10, 11, 12, 20},
		},
		{
			name:    "name filter is a case-insensitive substring",
			req:     character.ListCharactersRequest{Name: "al", Sort: character.SortName, Limit: 50},
			wantIDs: []int{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.List(ctx, tt.req)
			require.NoError(t, err)

			gotIDs := make([]int, 0, len(items))
			for _, it := range items {
				gotIDs = append(gotIDs, it.CharacterID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestListCharactersSilentCharacterCountsZero(t *testing.T) {
	svc := fixtureService(t)

	items, err := svc.List(context.Background(), character.ListCharactersRequest{
		Name: "helen", Sort: character.SortName, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, character.ListItem{
		CharacterID:   56,
		Character:     "HELEN",
		Movie:         "Third Act",
		NumberOfLines: 0,
	}, items[0])
}

func TestGetCharacter(t *testing.T) {
	svc := fixtureService(t)

	detail, err := svc.Get(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 10, detail.CharacterID)
	assert.Equal(t, "ALICE", detail.Character)
	assert.Equal(t, "The Big Heist", detail.Movie)
	require.NotNil(t, detail.Gender)
	assert.Equal(t, "F", *detail.Gender)

	require.Len(t, detail.TopConversations, 2)
	top := detail.TopConversations[0]
	assert.Equal(t, 11, top.CharacterID)
	assert.Equal(t, "BOB", top.Character)
	assert.Equal(t, 3, top.NumberOfLinesTogether)

	second := detail.TopConversations[1]
	assert.Equal(t, 12, second.CharacterID)
	assert.Nil(t, second.Gender, "unknown gender serializes as null")
	assert.Equal(t, 2, second.NumberOfLinesTogether)
}

func TestGetCharacterWithoutConversations(t *testing.T) {
	svc := fixtureService(t)

	detail, err := svc.Get(context.Background(), 56)
	require.NoError(t, err)
	assert.Empty(t, detail.TopConversations)
}

func TestGetCharacterNotFound(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, character.ErrCharacterNotFound)
	assert.Equal(t, 404, character.GetHTTPStatusCode(err))
}
