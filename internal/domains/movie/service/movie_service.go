package service

import (
	"context"
	"errors"
	"fmt"

	"dialogue-backend/internal/corpus"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/domains/movie"
	"dialogue-backend/internal/shared/query"
)

// The movie detail view lists at most five characters.
const topCharacterLimit = 5

type MovieService interface {
	List(ctx context.Context, req movie.ListMoviesRequest) ([]movie.ListItem, error)
	Get(ctx context.Context, id int) (*movie.Detail, error)
}

type movieService struct {
	store  corpus.Store
	engine *stats.Engine
}

func NewMovieService(store corpus.Store, engine *stats.Engine) MovieService {
	return &movieService{store: store, engine: engine}
}

var listTable = query.Table[movie.ListItem]{
	Keys: map[string]query.Less[movie.ListItem]{
		movie.SortTitle:  func(a, b movie.ListItem) bool { return a.MovieTitle < b.MovieTitle },
		movie.SortYear:   func(a, b movie.ListItem) bool { return a.Year < b.Year },
		movie.SortRating: func(a, b movie.ListItem) bool { return a.IMDBRating > b.IMDBRating },
	},
	Tie: func(a, b movie.ListItem) bool { return a.MovieID < b.MovieID },
}

func (s *movieService) List(ctx context.Context, req movie.ListMoviesRequest) ([]movie.ListItem, error) {
	movies, err := s.store.ScanMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	items := make([]movie.ListItem, 0, len(movies))
	for _, m := range movies {
		if !query.ContainsFold(m.Title, req.Name) {
			continue
		}
		items = append(items, movie.ListItem{
			MovieID:    m.ID,
			MovieTitle: m.Title,
			Year:       m.Year,
			IMDBRating: m.IMDBRating,
			IMDBVotes:  m.IMDBVotes,
		})
	}

	return listTable.Run(items, query.Params{Sort: req.Sort, Limit: req.Limit, Offset: req.Offset})
}

func (s *movieService) Get(ctx context.Context, id int) (*movie.Detail, error) {
	m, err := s.store.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return nil, movie.ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	ranked, err := s.engine.TopCharactersByLines(ctx, id, topCharacterLimit)
	if err != nil {
		return nil, fmt.Errorf("top characters for movie %d: %w", id, err)
	}

	top := make([]movie.TopCharacter, 0, len(ranked))
	for _, r := range ranked {
		top = append(top, movie.TopCharacter{
			CharacterID: r.CharacterID,
			Character:   r.Name,
			NumLines:    r.LineCount,
		})
	}

	return &movie.Detail{
		MovieID:       m.ID,
		Title:         m.Title,
		TopCharacters: top,
	}, nil
}
