package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"dialogue-backend/internal/corpus"
	"dialogue-backend/internal/domains/conversation"
)

type ConversationService interface {
	Get(ctx context.Context, id int) (*conversation.Detail, error)
	Add(ctx context.Context, movieID int, req conversation.AddConversationRequest) (*conversation.CreateResult, error)
}

type conversationService struct {
	store corpus.Store
}

func NewConversationService(store corpus.Store) ConversationService {
	return &conversationService{store: store}
}

func (s *conversationService) Get(ctx context.Context, id int) (*conversation.Detail, error) {
	cv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return nil, conversation.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	m, err := s.store.GetMovie(ctx, cv.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get conversation movie: %w", err)
	}

	names := make(map[int]string, 2)
	for _, charID := range []int{cv.Character1ID, cv.Character2ID} {
		ch, err := s.store.GetCharacter(ctx, charID)
		if err != nil {
			return nil, fmt.Errorf("get conversation character: %w", err)
		}
		names[charID] = ch.Name
	}

	all, err := s.store.ScanLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("get conversation lines: %w", err)
	}
	var rows []corpus.Line
	for _, l := range all {
		if l.ConversationID == id {
			rows = append(rows, l)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LineSort < rows[j].LineSort })

	lines := make([]conversation.LineEntry, 0, len(rows))
	for _, l := range rows {
		lines = append(lines, conversation.LineEntry{
			LineID:    l.ID,
			Character: names[l.CharacterID],
			Text:      l.Text,
		})
	}

	return &conversation.Detail{
		ConversationID: cv.ID,
		Movie:          m.Title,
		Lines:          lines,
	}, nil
}

// Add validates a new conversation and hands it to the store for
// atomic id allocation and insert. Any validation failure returns
// before the store is touched, so a rejected request cannot leave
// partial rows behind.
func (s *conversationService) Add(ctx context.Context, movieID int, req conversation.AddConversationRequest) (*conversation.CreateResult, error) {
	char1, err := s.getCharacter(ctx, req.Character1ID)
	if err != nil {
		return nil, err
	}
	char2, err := s.getCharacter(ctx, req.Character2ID)
	if err != nil {
		return nil, err
	}

	if char1.ID == char2.ID {
		return nil, conversation.ErrSameCharacter
	}
	if char1.MovieID != movieID || char2.MovieID != movieID {
		return nil, conversation.ErrCharacterNotInMovie
	}
	if char1.MovieID != char2.MovieID {
		return nil, conversation.ErrCrossMovieCharacters
	}
	if len(req.Lines) == 0 {
		return nil, conversation.ErrEmptyConversation
	}

	draft := corpus.Draft{
		MovieID:      movieID,
		Character1ID: char1.ID,
		Character2ID: char2.ID,
		Lines:        make([]corpus.DraftLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		if l.CharacterID != char1.ID && l.CharacterID != char2.ID {
			return nil, conversation.ErrLineSpeakerNotInPair
		}
		draft.Lines = append(draft.Lines, corpus.DraftLine{
			CharacterID: l.CharacterID,
			Text:        l.Text,
		})
	}

	conversationID, err := s.store.AddConversation(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("add conversation: %w", err)
	}

	// Audit trail for write traffic, the way the CSV pipeline used to
	// log each POST.
	log.Info().
		Int("conversation_id", conversationID).
		Int("movie_id", movieID).
		Int("lines", len(draft.Lines)).
		Msg("conversation added")

	return &conversation.CreateResult{ConversationID: conversationID}, nil
}

func (s *conversationService) getCharacter(ctx context.Context, id int) (*corpus.Character, error) {
	ch, err := s.store.GetCharacter(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return nil, conversation.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("get character: %w", err)
	}
	return ch, nil
}
