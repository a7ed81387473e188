// Package stats derives the facts the corpus does not store: line
// counts, partner rankings, recipients. Every call recomputes from the
// current store contents so a committed write is visible to the very
// next read; nothing here is cached.
package stats

import (
	"context"
	"sort"

	"dialogue-backend/internal/corpus"
)

// Engine answers aggregate queries over one Store.
type Engine struct {
	store corpus.Store
}

func New(store corpus.Store) *Engine {
	return &Engine{store: store}
}

// Partner is one entry of a character's top_conversations ranking.
// LinesTogether counts every line of every shared conversation, spoken
// by either side.
type Partner struct {
	CharacterID   int
	Name          string
	Gender        string
	LinesTogether int
}

// CharacterLines is one entry of a movie's top-characters ranking.
type CharacterLines struct {
	CharacterID int
	Name        string
	LineCount   int
}

// LinesSpokenBy counts the lines spoken by one character. Zero when
// the character is silent; corpus.ErrNotFound when the id is unknown.
func (e *Engine) LinesSpokenBy(ctx context.Context, characterID int) (int, error) {
	if _, err := e.store.GetCharacter(ctx, characterID); err != nil {
		return 0, err
	}
	lines, err := e.store.ScanLines(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lines {
		if l.CharacterID == characterID {
			count++
		}
	}
	return count, nil
}

// LinesInConversation counts the lines of one conversation.
func (e *Engine) LinesInConversation(ctx context.Context, conversationID int) (int, error) {
	if _, err := e.store.GetConversation(ctx, conversationID); err != nil {
		return 0, err
	}
	lines, err := e.store.ScanLines(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lines {
		if l.ConversationID == conversationID {
			count++
		}
	}
	return count, nil
}

// CharacterLineCounts tallies spoken lines per character across the
// whole corpus in one scan. Characters without lines are absent from
// the map.
func (e *Engine) CharacterLineCounts(ctx context.Context) (map[int]int, error) {
	lines, err := e.store.ScanLines(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for _, l := range lines {
		counts[l.CharacterID]++
	}
	return counts, nil
}

// TopConversationPartners groups every conversation involving the
// character by the other participant and sums whole-conversation line
// counts. Ordered by LinesTogether descending, then partner id
// ascending so equal counts page out deterministically. A character
// with no conversations gets an empty slice, not an error.
func (e *Engine) TopConversationPartners(ctx context.Context, characterID int) ([]Partner, error) {
	if _, err := e.store.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	conversations, err := e.store.ScanConversations(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := e.store.ScanLines(ctx)
	if err != nil {
		return nil, err
	}

	conversationLines := make(map[int]int)
	for _, l := range lines {
		conversationLines[l.ConversationID]++
	}

	linesWith := make(map[int]int)
	for _, cv := range conversations {
		var partnerID int
		switch characterID {
		case cv.Character1ID:
			partnerID = cv.Character2ID
		case cv.Character2ID:
			partnerID = cv.Character1ID
		default:
			continue
		}
		linesWith[partnerID] += conversationLines[cv.ID]
	}

	partners := make([]Partner, 0, len(linesWith))
	for partnerID, together := range linesWith {
		partner, err := e.store.GetCharacter(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		partners = append(partners, Partner{
			CharacterID:   partnerID,
			Name:          partner.Name,
			Gender:        partner.Gender,
			LinesTogether: together,
		})
	}
	sort.Slice(partners, func(i, j int) bool {
		if partners[i].LinesTogether != partners[j].LinesTogether {
			return partners[i].LinesTogether > partners[j].LinesTogether
		}
		return partners[i].CharacterID < partners[j].CharacterID
	})
	return partners, nil
}

// TopCharactersByLines ranks a movie's characters by how many lines
// they speak in it, count descending then character id ascending, and
// returns at most limit entries. The tally is built from the Lines
// table, so characters with zero lines never appear.
func (e *Engine) TopCharactersByLines(ctx context.Context, movieID, limit int) ([]CharacterLines, error) {
	if _, err := e.store.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}
	lines, err := e.store.ScanLines(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, l := range lines {
		if l.MovieID == movieID {
			counts[l.CharacterID]++
		}
	}

	ranked := make([]CharacterLines, 0, len(counts))
	for characterID, count := range counts {
		character, err := e.store.GetCharacter(ctx, characterID)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, CharacterLines{
			CharacterID: characterID,
			Name:        character.Name,
			LineCount:   count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].LineCount != ranked[j].LineCount {
			return ranked[i].LineCount > ranked[j].LineCount
		}
		return ranked[i].CharacterID < ranked[j].CharacterID
	})
	if limit >= 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// RecipientOf resolves who a line is spoken to: the participant of the
// line's conversation that is not the speaker.
func (e *Engine) RecipientOf(ctx context.Context, lineID int) (*corpus.Character, error) {
	line, err := e.store.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	cv, err := e.store.GetConversation(ctx, line.ConversationID)
	if err != nil {
		return nil, err
	}
	recipientID := cv.Character1ID
	if line.CharacterID == cv.Character1ID {
		recipientID = cv.Character2ID
	}
	return e.store.GetCharacter(ctx, recipientID)
}
