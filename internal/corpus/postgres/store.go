// Package postgres is the relational CorpusStore backend. It mirrors
// the memory backend's semantics exactly so the query layer cannot
// tell them apart.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dialogue-backend/internal/corpus"
	"dialogue-backend/pkg/database"
)

// writerLockKey serializes AddConversation transactions. Every writer
// takes this advisory lock before reading the id maxima, so the
// allocate+insert unit cannot interleave between two writers.
const writerLockKey = 7225131

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the four corpus tables when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS movies (
	movie_id    INT PRIMARY KEY,
	title       TEXT NOT NULL,
	year        INT NOT NULL,
	imdb_rating DOUBLE PRECISION NOT NULL,
	imdb_votes  INT NOT NULL
);
CREATE TABLE IF NOT EXISTS characters (
	character_id INT PRIMARY KEY,
	name         TEXT NOT NULL,
	movie_id     INT NOT NULL REFERENCES movies (movie_id),
	gender       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS conversations (
	conversation_id INT PRIMARY KEY,
	movie_id        INT NOT NULL REFERENCES movies (movie_id),
	character1_id   INT NOT NULL REFERENCES characters (character_id),
	character2_id   INT NOT NULL REFERENCES characters (character_id),
	CHECK (character1_id <> character2_id)
);
CREATE TABLE IF NOT EXISTS lines (
	line_id         INT PRIMARY KEY,
	conversation_id INT NOT NULL REFERENCES conversations (conversation_id),
	character_id    INT NOT NULL REFERENCES characters (character_id),
	movie_id        INT NOT NULL REFERENCES movies (movie_id),
	line_sort       INT NOT NULL,
	line_text       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lines_conversation ON lines (conversation_id);
CREATE INDEX IF NOT EXISTS idx_lines_character ON lines (character_id);
CREATE INDEX IF NOT EXISTS idx_lines_movie ON lines (movie_id);`

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate corpus schema: %w", err)
	}
	return nil
}

func (s *Store) GetMovie(ctx context.Context, id int) (*corpus.Movie, error) {
	var m corpus.Movie
	err := s.pool.QueryRow(ctx,
		`SELECT movie_id, title, year, imdb_rating, imdb_votes FROM movies WHERE movie_id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Year, &m.IMDBRating, &m.IMDBVotes)
	if err != nil {
		return nil, mapErr(err, "get movie")
	}
	return &m, nil
}

func (s *Store) GetCharacter(ctx context.Context, id int) (*corpus.Character, error) {
	var c corpus.Character
	err := s.pool.QueryRow(ctx,
		`SELECT character_id, name, movie_id, gender FROM characters WHERE character_id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.MovieID, &c.Gender)
	if err != nil {
		return nil, mapErr(err, "get character")
	}
	return &c, nil
}

func (s *Store) GetConversation(ctx context.Context, id int) (*corpus.Conversation, error) {
	var cv corpus.Conversation
	err := s.pool.QueryRow(ctx,
		`SELECT conversation_id, movie_id, character1_id, character2_id FROM conversations WHERE conversation_id = $1`, id,
	).Scan(&cv.ID, &cv.MovieID, &cv.Character1ID, &cv.Character2ID)
	if err != nil {
		return nil, mapErr(err, "get conversation")
	}
	return &cv, nil
}

func (s *Store) GetLine(ctx context.Context, id int) (*corpus.Line, error) {
	var l corpus.Line
	err := s.pool.QueryRow(ctx,
		`SELECT line_id, conversation_id, character_id, movie_id, line_sort, line_text FROM lines WHERE line_id = $1`, id,
	).Scan(&l.ID, &l.ConversationID, &l.CharacterID, &l.MovieID, &l.LineSort, &l.Text)
	if err != nil {
		return nil, mapErr(err, "get line")
	}
	return &l, nil
}

func (s *Store) ScanMovies(ctx context.Context) ([]corpus.Movie, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT movie_id, title, year, imdb_rating, imdb_votes FROM movies ORDER BY movie_id`)
	if err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (corpus.Movie, error) {
		var m corpus.Movie
		err := row.Scan(&m.ID, &m.Title, &m.Year, &m.IMDBRating, &m.IMDBVotes)
		return m, err
	})
}

func (s *Store) ScanCharacters(ctx context.Context) ([]corpus.Character, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT character_id, name, movie_id, gender FROM characters ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("scan characters: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (corpus.Character, error) {
		var c corpus.Character
		err := row.Scan(&c.ID, &c.Name, &c.MovieID, &c.Gender)
		return c, err
	})
}

func (s *Store) ScanConversations(ctx context.Context) ([]corpus.Conversation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT conversation_id, movie_id, character1_id, character2_id FROM conversations ORDER BY conversation_id`)
	if err != nil {
		return nil, fmt.Errorf("scan conversations: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (corpus.Conversation, error) {
		var cv corpus.Conversation
		err := row.Scan(&cv.ID, &cv.MovieID, &cv.Character1ID, &cv.Character2ID)
		return cv, err
	})
}

func (s *Store) ScanLines(ctx context.Context) ([]corpus.Line, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT line_id, conversation_id, character_id, movie_id, line_sort, line_text FROM lines ORDER BY line_id`)
	if err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (corpus.Line, error) {
		var l corpus.Line
		err := row.Scan(&l.ID, &l.ConversationID, &l.CharacterID, &l.MovieID, &l.LineSort, &l.Text)
		return l, err
	})
}

func (s *Store) MaxConversationID(ctx context.Context) (int, error) {
	var maxID int
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(conversation_id), 0) FROM conversations`).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("max conversation id: %w", err)
	}
	return maxID, nil
}

func (s *Store) MaxLineID(ctx context.Context) (int, error) {
	var maxID int
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(line_id), 0) FROM lines`).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("max line id: %w", err)
	}
	return maxID, nil
}

// AddConversation runs the whole allocate+insert unit in one
// transaction behind an advisory lock, so concurrent writers read
// disjoint id maxima and no rows can be lost.
func (s *Store) AddConversation(ctx context.Context, draft corpus.Draft) (int, error) {
	return database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (int, error) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, writerLockKey); err != nil {
			return 0, fmt.Errorf("acquire writer lock: %w", err)
		}

		var conversationID, lineID int
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(conversation_id), 0) + 1 FROM conversations`).Scan(&conversationID); err != nil {
			return 0, fmt.Errorf("allocate conversation id: %w", err)
		}
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(line_id), 0) FROM lines`).Scan(&lineID); err != nil {
			return 0, fmt.Errorf("allocate line ids: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO conversations (conversation_id, movie_id, character1_id, character2_id)
			 VALUES ($1, $2, $3, $4)`,
			conversationID, draft.MovieID, draft.Character1ID, draft.Character2ID); err != nil {
			return 0, fmt.Errorf("insert conversation: %w", err)
		}

		lineRows := make([][]any, 0, len(draft.Lines))
		for sortOrder, dl := range draft.Lines {
			lineID++
			lineRows = append(lineRows, []any{
				lineID, conversationID, dl.CharacterID, draft.MovieID, sortOrder + 1, dl.Text,
			})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"lines"},
			[]string{"line_id", "conversation_id", "character_id", "movie_id", "line_sort", "line_text"},
			pgx.CopyFromRows(lineRows)); err != nil {
			return 0, fmt.Errorf("insert lines: %w", err)
		}

		return conversationID, nil
	})
}

func mapErr(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return corpus.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
