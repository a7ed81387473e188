package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"dialogue-backend/internal/corpus"
)

// Store keeps the whole corpus in memory. Movies and characters are
// immutable after load; conversations and lines are append-only. A
// single RWMutex serializes AddConversation against itself, so the
// read of the id high-water marks and the insert of the new rows form
// one mutual-exclusion region.
type Store struct {
	mu sync.RWMutex

	movies        []corpus.Movie
	characters    []corpus.Character
	conversations []corpus.Conversation
	lines         []corpus.Line

	movieIdx        map[int]int
	characterIdx    map[int]int
	conversationIdx map[int]int
	lineIdx         map[int]int

	maxConversationID int
	maxLineID         int
}

// NewStore builds a store from already-parsed records and checks the
// referential invariants once, so no query has to re-check them.
func NewStore(movies []corpus.Movie, characters []corpus.Character, conversations []corpus.Conversation, lines []corpus.Line) (*Store, error) {
	s := &Store{
		movies:          slices.Clone(movies),
		characters:      slices.Clone(characters),
		conversations:   slices.Clone(conversations),
		lines:           slices.Clone(lines),
		movieIdx:        make(map[int]int, len(movies)),
		characterIdx:    make(map[int]int, len(characters)),
		conversationIdx: make(map[int]int, len(conversations)),
		lineIdx:         make(map[int]int, len(lines)),
	}

	for i, m := range s.movies {
		if _, dup := s.movieIdx[m.ID]; dup {
			return nil, fmt.Errorf("duplicate movie id %d", m.ID)
		}
		s.movieIdx[m.ID] = i
	}
	for i, c := range s.characters {
		if _, dup := s.characterIdx[c.ID]; dup {
			return nil, fmt.Errorf("duplicate character id %d", c.ID)
		}
		if _, ok := s.movieIdx[c.MovieID]; !ok {
			return nil, fmt.Errorf("character %d references unknown movie %d", c.ID, c.MovieID)
		}
		s.characterIdx[c.ID] = i
	}
	for i, cv := range s.conversations {
		if err := s.checkConversation(cv); err != nil {
			return nil, err
		}
		s.conversationIdx[cv.ID] = i
		if cv.ID > s.maxConversationID {
			s.maxConversationID = cv.ID
		}
	}
	for i, l := range s.lines {
		if err := s.checkLine(l); err != nil {
			return nil, err
		}
		s.lineIdx[l.ID] = i
		if l.ID > s.maxLineID {
			s.maxLineID = l.ID
		}
	}

	return s, nil
}

func (s *Store) checkConversation(cv corpus.Conversation) error {
	if _, dup := s.conversationIdx[cv.ID]; dup {
		return fmt.Errorf("duplicate conversation id %d", cv.ID)
	}
	if cv.Character1ID == cv.Character2ID {
		return fmt.Errorf("conversation %d pairs character %d with itself", cv.ID, cv.Character1ID)
	}
	for _, charID := range []int{cv.Character1ID, cv.Character2ID} {
		ci, ok := s.characterIdx[charID]
		if !ok {
			return fmt.Errorf("conversation %d references unknown character %d", cv.ID, charID)
		}
		if s.characters[ci].MovieID != cv.MovieID {
			return fmt.Errorf("conversation %d: character %d belongs to movie %d, not %d",
				cv.ID, charID, s.characters[ci].MovieID, cv.MovieID)
		}
	}
	return nil
}

func (s *Store) checkLine(l corpus.Line) error {
	if _, dup := s.lineIdx[l.ID]; dup {
		return fmt.Errorf("duplicate line id %d", l.ID)
	}
	ci, ok := s.conversationIdx[l.ConversationID]
	if !ok {
		return fmt.Errorf("line %d references unknown conversation %d", l.ID, l.ConversationID)
	}
	cv := s.conversations[ci]
	if l.CharacterID != cv.Character1ID && l.CharacterID != cv.Character2ID {
		return fmt.Errorf("line %d: character %d is not part of conversation %d", l.ID, l.CharacterID, cv.ID)
	}
	if l.MovieID != cv.MovieID {
		return fmt.Errorf("line %d: movie %d does not match conversation movie %d", l.ID, l.MovieID, cv.MovieID)
	}
	return nil
}

func (s *Store) GetMovie(_ context.Context, id int) (*corpus.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.movieIdx[id]
	if !ok {
		return nil, corpus.ErrNotFound
	}
	m := s.movies[i]
	return &m, nil
}

func (s *Store) GetCharacter(_ context.Context, id int) (*corpus.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.characterIdx[id]
	if !ok {
		return nil, corpus.ErrNotFound
	}
	c := s.characters[i]
	return &c, nil
}

func (s *Store) GetConversation(_ context.Context, id int) (*corpus.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.conversationIdx[id]
	if !ok {
		return nil, corpus.ErrNotFound
	}
	cv := s.conversations[i]
	return &cv, nil
}

func (s *Store) GetLine(_ context.Context, id int) (*corpus.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.lineIdx[id]
	if !ok {
		return nil, corpus.ErrNotFound
	}
	l := s.lines[i]
	return &l, nil
}

func (s *Store) ScanMovies(_ context.Context) ([]corpus.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.movies), nil
}

func (s *Store) ScanCharacters(_ context.Context) ([]corpus.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.characters), nil
}

func (s *Store) ScanConversations(_ context.Context) ([]corpus.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.conversations), nil
}

func (s *Store) ScanLines(_ context.Context) ([]corpus.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines), nil
}

func (s *Store) MaxConversationID(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxConversationID, nil
}

func (s *Store) MaxLineID(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxLineID, nil
}

// AddConversation allocates ids and appends the rows under the write
// lock, so two concurrent writers can never compute the same ids.
func (s *Store) AddConversation(_ context.Context, draft corpus.Draft) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversationID := s.maxConversationID + 1
	cv := corpus.Conversation{
		ID:           conversationID,
		MovieID:      draft.MovieID,
		Character1ID: draft.Character1ID,
		Character2ID: draft.Character2ID,
	}
	if err := s.checkConversation(cv); err != nil {
		return 0, err
	}

	rows := make([]corpus.Line, 0, len(draft.Lines))
	lineID := s.maxLineID
	for sortOrder, dl := range draft.Lines {
		lineID++
		rows = append(rows, corpus.Line{
			ID:             lineID,
			ConversationID: conversationID,
			CharacterID:    dl.CharacterID,
			MovieID:        draft.MovieID,
			LineSort:       sortOrder + 1,
			Text:           dl.Text,
		})
	}

	s.conversations = append(s.conversations, cv)
	s.conversationIdx[cv.ID] = len(s.conversations) - 1
	s.maxConversationID = conversationID

	for _, row := range rows {
		if err := s.checkLine(row); err != nil {
			// Roll the conversation back so a bad draft leaves the
			// store exactly as it was.
			s.conversations = s.conversations[:len(s.conversations)-1]
			delete(s.conversationIdx, cv.ID)
			s.maxConversationID = conversationID - 1
			return 0, err
		}
	}
	for _, row := range rows {
		s.lines = append(s.lines, row)
		s.lineIdx[row.ID] = len(s.lines) - 1
	}
	s.maxLineID = lineID

	return conversationID, nil
}
