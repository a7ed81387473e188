package service

import (
	"context"
	"errors"
	"fmt"

	"dialogue-backend/internal/corpus"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/domains/line"
	"dialogue-backend/internal/shared/query"
)

type LineService interface {
	List(ctx context.Context, req line.ListLinesRequest) ([]line.ListItem, error)
	Get(ctx context.Context, id int) (*line.Detail, error)
}

type lineService struct {
	store  corpus.Store
	engine *stats.Engine
}

func NewLineService(store corpus.Store, engine *stats.Engine) LineService {
	return &lineService{store: store, engine: engine}
}

// listRow keeps the conversation id next to the projected item so the
// "conversation" sort key can see it without leaking it into the
// response shape.
type listRow struct {
	item           line.ListItem
	conversationID int
}

var listTable = query.Table[listRow]{
	Keys: map[string]query.Less[listRow]{
		line.SortCharacter: func(a, b listRow) bool { return a.item.Character < b.item.Character },
		line.SortMovie:     func(a, b listRow) bool { return a.item.MovieTitle < b.item.MovieTitle },
		line.SortConversation: func(a, b listRow) bool {
			return a.conversationID < b.conversationID
		},
	},
	Tie: func(a, b listRow) bool { return a.item.LineID < b.item.LineID },
}

func (s *lineService) List(ctx context.Context, req line.ListLinesRequest) ([]line.ListItem, error) {
	lines, err := s.store.ScanLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	characters, err := s.store.ScanCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	movies, err := s.store.ScanMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}

	names := make(map[int]string, len(characters))
	for _, ch := range characters {
		names[ch.ID] = ch.Name
	}
	titles := make(map[int]string, len(movies))
	for _, m := range movies {
		titles[m.ID] = m.Title
	}

	rows := make([]listRow, 0, len(lines))
	for _, l := range lines {
		if !query.ContainsFold(l.Text, req.Text) || !query.ContainsFold(names[l.CharacterID], req.Name) {
			continue
		}
		rows = append(rows, listRow{
			item: line.ListItem{
				LineID:     l.ID,
				MovieTitle: titles[l.MovieID],
				Character:  names[l.CharacterID],
				Text:       l.Text,
			},
			conversationID: l.ConversationID,
		})
	}

	rows, err = listTable.Run(rows, query.Params{Sort: req.Sort, Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		return nil, err
	}

	items := make([]line.ListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item)
	}
	return items, nil
}

func (s *lineService) Get(ctx context.Context, id int) (*line.Detail, error) {
	l, err := s.store.GetLine(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return nil, line.ErrLineNotFound
		}
		return nil, fmt.Errorf("get line: %w", err)
	}

	speaker, err := s.store.GetCharacter(ctx, l.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("get line speaker: %w", err)
	}
	m, err := s.store.GetMovie(ctx, l.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get line movie: %w", err)
	}
	recipient, err := s.engine.RecipientOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get line recipient: %w", err)
	}

	return &line.Detail{
		LineID:         l.ID,
		ConversationID: l.ConversationID,
		Movie:          m.Title,
		Character:      speaker.Name,
		Recipient:      recipient.Name,
		Text:           l.Text,
	}, nil
}
