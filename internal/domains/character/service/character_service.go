package service

import (
	"context"
	"errors"
	"fmt"

	"dialogue-backend/internal/corpus"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/domains/character"
	"dialogue-backend/internal/shared/query"
)

type CharacterService interface {
	List(ctx context.Context, req character.ListCharactersRequest) ([]character.ListItem, error)
	Get(ctx context.Context, id int) (*character.Detail, error)
}

type characterService struct {
	store  corpus.Store
	engine *stats.Engine
}

func NewCharacterService(store corpus.Store, engine *stats.Engine) CharacterService {
	return &characterService{store: store, engine: engine}
}

var listTable = query.Table[character.ListItem]{
	Keys: map[string]query.Less[character.ListItem]{
		character.SortName:  func(a, b character.ListItem) bool { return a.Character < b.Character },
		character.SortMovie: func(a, b character.ListItem) bool { return a.Movie < b.Movie },
		character.SortLines: func(a, b character.ListItem) bool { return a.NumberOfLines > b.NumberOfLines },
	},
	Tie: func(a, b character.ListItem) bool { return a.CharacterID < b.CharacterID },
}

func (s *characterService) List(ctx context.Context, req character.ListCharactersRequest) ([]character.ListItem, error) {
	characters, err := s.store.ScanCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	movies, err := s.store.ScanMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	titles := make(map[int]string, len(movies))
	for _, m := range movies {
		titles[m.ID] = m.Title
	}
	lineCounts, err := s.engine.CharacterLineCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}

	items := make([]character.ListItem, 0, len(characters))
	for _, ch := range characters {
		if !query.ContainsFold(ch.Name, req.Name) {
			continue
		}
		// Silent characters simply count zero lines.
		items = append(items, character.ListItem{
			CharacterID:   ch.ID,
			Character:     ch.Name,
			Movie:         titles[ch.MovieID],
			NumberOfLines: lineCounts[ch.ID],
		})
	}

	return listTable.Run(items, query.Params{Sort: req.Sort, Limit: req.Limit, Offset: req.Offset})
}

func (s *characterService) Get(ctx context.Context, id int) (*character.Detail, error) {
	ch, err := s.store.GetCharacter(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return nil, character.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("get character: %w", err)
	}
	m, err := s.store.GetMovie(ctx, ch.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get character movie: %w", err)
	}

	partners, err := s.engine.TopConversationPartners(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("top conversation partners for character %d: %w", id, err)
	}

	top := make([]character.TopConversation, 0, len(partners))
	for _, p := range partners {
		top = append(top, character.TopConversation{
			CharacterID:           p.CharacterID,
			Character:             p.Name,
			Gender:                character.NullableGender(p.Gender),
			NumberOfLinesTogether: p.LinesTogether,
		})
	}

	return &character.Detail{
		CharacterID:      ch.ID,
		Character:        ch.Name,
		Movie:            m.Title,
		Gender:           character.NullableGender(ch.Gender),
		TopConversations: top,
	}, nil
}
