package corpus

import (
	"context"
	"errors"
)

// ErrNotFound is returned by the Get* lookups when no record carries
// the requested id. Domain services translate it into their own
// not-found sentinels.
var ErrNotFound = errors.New("corpus: record not found")

// Store is the single data-access abstraction shared by every
// endpoint. Two implementations exist: an immutable-after-load
// in-memory snapshot fed from the corpus CSV files, and a PostgreSQL
// backend. Query logic never depends on which one is wired in.
//
// Reads are safe to run concurrently. AddConversation is the only
// mutation: it must allocate ids and insert the rows as one atomic
// unit so concurrent writers can never observe or reuse the same
// maximum id.
type Store interface {
	GetMovie(ctx context.Context, id int) (*Movie, error)
	GetCharacter(ctx context.Context, id int) (*Character, error)
	GetConversation(ctx context.Context, id int) (*Conversation, error)
	GetLine(ctx context.Context, id int) (*Line, error)

	// Full scans. Slices are snapshots owned by the caller.
	ScanMovies(ctx context.Context) ([]Movie, error)
	ScanCharacters(ctx context.Context) ([]Character, error)
	ScanConversations(ctx context.Context) ([]Conversation, error)
	ScanLines(ctx context.Context) ([]Line, error)

	// MaxConversationID and MaxLineID report the current id
	// high-water marks (0 when the table is empty). They exist for
	// observability and tests; AddConversation does its own
	// allocation inside its atomic section.
	MaxConversationID(ctx context.Context) (int, error)
	MaxLineID(ctx context.Context) (int, error)

	// AddConversation persists a validated draft: conversation id =
	// max+1, a contiguous block of line ids from the global line
	// maximum, line_sort 1..len(draft.Lines). Returns the new
	// conversation id.
	AddConversation(ctx context.Context, draft Draft) (int, error)
}
