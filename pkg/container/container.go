package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"dialogue-backend/internal/config"
	"dialogue-backend/internal/corpus"
	"dialogue-backend/internal/corpus/memory"
	pgstore "dialogue-backend/internal/corpus/postgres"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/infrastructure/database"

	characterHandler "dialogue-backend/internal/domains/character/handler"
	characterService "dialogue-backend/internal/domains/character/service"
	conversationHandler "dialogue-backend/internal/domains/conversation/handler"
	conversationService "dialogue-backend/internal/domains/conversation/service"
	lineHandler "dialogue-backend/internal/domains/line/handler"
	lineService "dialogue-backend/internal/domains/line/service"
	movieHandler "dialogue-backend/internal/domains/movie/handler"
	movieService "dialogue-backend/internal/domains/movie/service"
)

// Container is the root of the dependency graph: config, the selected
// corpus store, the aggregation engine, and every service and handler.
// All members are singletons for the process lifetime.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB // nil when the memory backend is active
	Store  corpus.Store
	Engine *stats.Engine

	MovieHandler        *movieHandler.MovieHandler
	CharacterHandler    *characterHandler.CharacterHandler
	LineHandler         *lineHandler.LineHandler
	ConversationHandler *conversationHandler.ConversationHandler
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	c := &Container{Config: cfg}
	if err := c.initStore(); err != nil {
		return nil, err
	}
	c.Engine = stats.New(c.Store)

	c.MovieHandler = movieHandler.NewMovieHandler(
		movieService.NewMovieService(c.Store, c.Engine))
	c.CharacterHandler = characterHandler.NewCharacterHandler(
		characterService.NewCharacterService(c.Store, c.Engine))
	c.LineHandler = lineHandler.NewLineHandler(
		lineService.NewLineService(c.Store, c.Engine))
	c.ConversationHandler = conversationHandler.NewConversationHandler(
		conversationService.NewConversationService(c.Store))

	return c, nil
}

func (c *Container) initStore() error {
	switch c.Config.Corpus.Backend {
	case config.BackendMemory:
		store, err := memory.LoadDir(c.Config.Corpus.Dir)
		if err != nil {
			return fmt.Errorf("load corpus from %s: %w", c.Config.Corpus.Dir, err)
		}
		c.Store = store
		log.Info().Str("dir", c.Config.Corpus.Dir).Msg("corpus loaded into memory")

	case config.BackendPostgres:
		dbCfg := c.Config.Database
		db := database.NewPostgresDB(&database.DBConfig{
			Host:           dbCfg.Host,
			Port:           dbCfg.Port,
			Username:       dbCfg.User,
			Password:       dbCfg.Password,
			DBName:         dbCfg.Database,
			SSLMode:        dbCfg.SSLMode,
			MaxConns:       int32(dbCfg.MaxConns),
			MinConns:       int32(dbCfg.MinConns),
			MaxRetries:     config.DBMaxRetries,
			RetryDelay:     config.DBRetryDelay,
			ConnectTimeout: config.DBConnectTimeout,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("connect corpus database: %w", err)
		}

		store := pgstore.NewStore(db.Pool)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return fmt.Errorf("migrate corpus database: %w", err)
		}
		c.DB = db
		c.Store = store
	}
	return nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
