// Command seed loads the corpus CSV files and bulk-copies them into
// PostgreSQL, so the API can run with CORPUS_BACKEND=postgres.
package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"dialogue-backend/internal/config"
	"dialogue-backend/internal/corpus/memory"
	pgstore "dialogue-backend/internal/corpus/postgres"
	"dialogue-backend/internal/infrastructure/database"
	"dialogue-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// The CSV loader doubles as the parser/validator for seeding: if
	// the files do not form a consistent corpus, nothing gets copied.
	store, err := memory.LoadDir(cfg.Corpus.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Corpus.Dir).Msg("failed to load corpus")
	}

	db := database.NewPostgresDB(&database.DBConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		Username:       cfg.Database.User,
		Password:       cfg.Database.Password,
		DBName:         cfg.Database.Database,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       int32(cfg.Database.MaxConns),
		MinConns:       int32(cfg.Database.MinConns),
		MaxRetries:     config.DBMaxRetries,
		RetryDelay:     config.DBRetryDelay,
		ConnectTimeout: config.DBConnectTimeout,
	})
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer db.Close()

	if err := pgstore.NewStore(db.Pool).Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	if err := copyCorpus(ctx, db.Pool, store); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("corpus seeded")
}

func copyCorpus(ctx context.Context, pool *pgxpool.Pool, store *memory.Store) error {
	movies, err := store.ScanMovies(ctx)
	if err != nil {
		return err
	}
	characters, err := store.ScanCharacters(ctx)
	if err != nil {
		return err
	}
	conversations, err := store.ScanConversations(ctx)
	if err != nil {
		return err
	}
	lines, err := store.ScanLines(ctx)
	if err != nil {
		return err
	}

	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"movies"},
		[]string{"movie_id", "title", "year", "imdb_rating", "imdb_votes"},
		pgx.CopyFromSlice(len(movies), func(i int) ([]any, error) {
			m := movies[i]
			return []any{m.ID, m.Title, m.Year, m.IMDBRating, m.IMDBVotes}, nil
		}))
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("movies copied")

	n, err = pool.CopyFrom(ctx,
		pgx.Identifier{"characters"},
		[]string{"character_id", "name", "movie_id", "gender"},
		pgx.CopyFromSlice(len(characters), func(i int) ([]any, error) {
			c := characters[i]
			return []any{c.ID, c.Name, c.MovieID, c.Gender}, nil
		}))
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("characters copied")

	n, err = pool.CopyFrom(ctx,
		pgx.Identifier{"conversations"},
		[]string{"conversation_id", "movie_id", "character1_id", "character2_id"},
		pgx.CopyFromSlice(len(conversations), func(i int) ([]any, error) {
			cv := conversations[i]
			return []any{cv.ID, cv.MovieID, cv.Character1ID, cv.Character2ID}, nil
		}))
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("conversations copied")

	n, err = pool.CopyFrom(ctx,
		pgx.Identifier{"lines"},
		[]string{"line_id", "conversation_id", "character_id", "movie_id", "line_sort", "line_text"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			return []any{l.ID, l.ConversationID, l.CharacterID, l.MovieID, l.LineSort, l.Text}, nil
		}))
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("lines copied")

	return nil
}
