package corpus

// Typed records for the four corpus tables. Fields are parsed and
// validated once at ingestion; nothing downstream re-parses strings.

// Movie is loaded at startup and never created through the API.
type Movie struct {
	ID         int
	Title      string
	Year       int
	IMDBRating float64
	IMDBVotes  int
}

// Character belongs to exactly one movie. Gender is "" when unknown.
type Character struct {
	ID      int
	Name    string
	MovieID int
	Gender  string
}

// Conversation is an unordered pair of distinct characters from the
// same movie. Append-only: created by AddConversation, never mutated.
type Conversation struct {
	ID           int
	MovieID      int
	Character1ID int
	Character2ID int
}

// Line is one utterance inside a conversation. LineSort is the 1-based
// position within the conversation, contiguous and assigned at insert.
type Line struct {
	ID             int
	ConversationID int
	CharacterID    int
	MovieID        int
	LineSort       int
	Text           string
}

// Draft is a validated conversation waiting for id allocation. The
// store assigns the conversation id, the line ids and line_sort.
type Draft struct {
	MovieID      int
	Character1ID int
	Character2ID int
	Lines        []DraftLine
}

// DraftLine carries one utterance of a Draft in speaking order.
type DraftLine struct {
	CharacterID int
	Text        string
}
