package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func validCorpus() map[string]string {
	return map[string]string{
		"movies.csv": "movie_id,title,year,imdb_rating,imdb_votes,raw_script_url\n" +
			"1,The Big Heist,1999,7.5,1000,http://example.com/1\n" +
			"2,Quiet Harbor,1987/I,8.1,2500,http://example.com/2\n",
		"characters.csv": "character_id,name,movie_id,gender,age\n" +
			"10,ALICE,1,F,30\n" +
			"11,BOB,1,M,\n" +
			"12,CAROL,1,,\n",
		"conversations.csv": "conversation_id,character1_id,character2_id,movie_id\n" +
			"100,10,11,1\n",
		"lines.csv": "line_id,character_id,movie_id,conversation_id,line_sort,line_text\n" +
			"1000,10,1,100,1,\"We need a plan, now.\"\n" +
			"1001,11,1,100,2,I have one.\n",
	}
}

func TestLoadDir(t *testing.T) {
	dir := writeCorpus(t, validCorpus())

	store, err := LoadDir(dir)
	require.NoError(t, err)
	ctx := context.Background()

	m, err := store.GetMovie(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Quiet Harbor", m.Title)
	assert.Equal(t, 1987, m.Year, "year variants like 1987/I keep the numeric part")
	assert.InDelta(t, 8.1, m.IMDBRating, 1e-9)
	assert.Equal(t, 2500, m.IMDBVotes)

	ch, err := store.GetCharacter(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "", ch.Gender)

	l, err := store.GetLine(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, "We need a plan, now.", l.Text)
	assert.Equal(t, 100, l.ConversationID)
	assert.Equal(t, 1, l.LineSort)
}

func TestLoadDirRejectsBadData(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(files map[string]string)
		wantErr string
	}{
		{
			name: "non-numeric movie id",
			mutate: func(files map[string]string) {
				files["movies.csv"] = "movie_id,title,year,imdb_rating,imdb_votes\nabc,X,1999,7.5,1000\n"
			},
			wantErr: "movies.csv",
		},
		{
			name: "unparseable year",
			mutate: func(files map[string]string) {
				files["movies.csv"] = "movie_id,title,year,imdb_rating,imdb_votes\n1,X,unknown,7.5,1000\n"
			},
			wantErr: "not a year",
		},
		{
			name: "line referencing unknown conversation",
			mutate: func(files map[string]string) {
				files["lines.csv"] = "line_id,character_id,movie_id,conversation_id,line_sort,line_text\n" +
					"1000,10,1,999,1,hello\n"
			},
			wantErr: "unknown conversation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := validCorpus()
			tt.mutate(files)
			_, err := LoadDir(writeCorpus(t, files))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	files := validCorpus()
	delete(files, "lines.csv")
	_, err := LoadDir(writeCorpus(t, files))
	require.Error(t, err)
}
