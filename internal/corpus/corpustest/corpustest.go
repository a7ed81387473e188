// Package corpustest provides a small, fully valid corpus fixture
// shared by the service and aggregation tests.
package corpustest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dialogue-backend/internal/corpus"
	"dialogue-backend/internal/corpus/memory"
)

// Fixture layout:
//
//	movie 1 "The Big Heist" (1999): ALICE(10,F), BOB(11,M), CAROL(12,?)
//	movie 2 "Quiet Harbor"  (1987): DAVE(20,M), EVE(21,F)
//	movie 3 "Third Act"     (2005): FRANK(49,M), GRACE(55,F), HELEN(56,F)
//
//	conversation 100 (movie 1, ALICE/BOB):   lines 1000(A) 1001(B) 1002(A)
//	conversation 101 (movie 1, ALICE/CAROL): lines 1003(C) 1004(A)
//	conversation 102 (movie 2, DAVE/EVE):    line  1005(D)
//	conversation 103 (movie 3, FRANK/GRACE): line  1006(G)
//
// HELEN has no conversations and no lines.
func Movies() []corpus.Movie {
	return []corpus.Movie{
		{ID: 1, Title: "The Big Heist", Year: 1999, IMDBRating: 7.5, IMDBVotes: 1000},
		{ID: 2, Title: "Quiet Harbor", Year: 1987, IMDBRating: 8.1, IMDBVotes: 2500},
		{ID: 3, Title: "Third Act", Year: 2005, IMDBRating: 6.9, IMDBVotes: 800},
	}
}

func Characters() []corpus.Character {
	return []corpus.Character{
		{ID: 10, Name: "ALICE", MovieID: 1, Gender: "F"},
		{ID: 11, Name: "BOB", MovieID: 1, Gender: "M"},
		{ID: 12, Name: "CAROL", MovieID: 1, Gender: ""},
		{ID: 20, Name: "DAVE", MovieID: 2, Gender: "M"},
		{ID: 21, Name: "EVE", MovieID: 2, Gender: "F"},
		{ID: 49, Name: "FRANK", MovieID: 3, Gender: "M"},
		{ID: 55, Name: "GRACE", MovieID: 3, Gender: "F"},
		{ID: 56, Name: "HELEN", MovieID: 3, Gender: "F"},
	}
}

func Conversations() []corpus.Conversation {
	return []corpus.Conversation{
		{ID: 100, MovieID: 1, Character1ID: 10, Character2ID: 11},
		{ID: 101, MovieID: 1, Character1ID: 10, Character2ID: 12},
		{ID: 102, MovieID: 2, Character1ID: 20, Character2ID: 21},
		{ID: 103, MovieID: 3, Character1ID: 49, Character2ID: 55},
	}
}

func Lines() []corpus.Line {
	return []corpus.Line{
		{ID: 1000, ConversationID: 100, CharacterID: 10, MovieID: 1, LineSort: 1, Text: "We need a plan."},
		{ID: 1001, ConversationID: 100, CharacterID: 11, MovieID: 1, LineSort: 2, Text: "I have one."},
		{ID: 1002, ConversationID: 100, CharacterID: 10, MovieID: 1, LineSort: 3, Text: "Let's hear it."},
		{ID: 1003, ConversationID: 101, CharacterID: 12, MovieID: 1, LineSort: 1, Text: "You're late."},
		{ID: 1004, ConversationID: 101, CharacterID: 10, MovieID: 1, LineSort: 2, Text: "Traffic."},
		{ID: 1005, ConversationID: 102, CharacterID: 20, MovieID: 2, LineSort: 1, Text: "The harbor is quiet tonight."},
		{ID: 1006, ConversationID: 103, CharacterID: 55, MovieID: 3, LineSort: 1, Text: "Curtain up."},
	}
}

// NewStore builds a memory store from the fixture.
func NewStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.NewStore(Movies(), Characters(), Conversations(), Lines())
	require.NoError(t, err)
	return store
}
