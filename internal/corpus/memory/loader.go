package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dialogue-backend/internal/corpus"
)

// The corpus ships as four CSV files. Fields are parsed into typed
// records here, once; the rest of the application never sees strings
// where it expects numbers.

// LoadDir reads movies.csv, characters.csv, conversations.csv and
// lines.csv from dir and returns a validated store.
func LoadDir(dir string) (*Store, error) {
	movies, err := loadMovies(filepath.Join(dir, "movies.csv"))
	if err != nil {
		return nil, err
	}
	characters, err := loadCharacters(filepath.Join(dir, "characters.csv"))
	if err != nil {
		return nil, err
	}
	conversations, err := loadConversations(filepath.Join(dir, "conversations.csv"))
	if err != nil {
		return nil, err
	}
	lines, err := loadLines(filepath.Join(dir, "lines.csv"))
	if err != nil {
		return nil, err
	}
	return NewStore(movies, characters, conversations, lines)
}

// row is one CSV record addressed by header name.
type row map[string]string

func readCSV(path string, fn func(r row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", filepath.Base(path), err)
	}

	for lineNo := 2; ; lineNo++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filepath.Base(path), lineNo, err)
		}
		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[name] = record[i]
			}
		}
		if err := fn(r); err != nil {
			return fmt.Errorf("%s:%d: %w", filepath.Base(path), lineNo, err)
		}
	}
}

func loadMovies(path string) ([]corpus.Movie, error) {
	var movies []corpus.Movie
	err := readCSV(path, func(r row) error {
		id, err := atoi(r, "movie_id")
		if err != nil {
			return err
		}
		year, err := parseYear(r["year"])
		if err != nil {
			return err
		}
		rating, err := atof(r, "imdb_rating")
		if err != nil {
			return err
		}
		votes, err := atoi(r, "imdb_votes")
		if err != nil {
			return err
		}
		movies = append(movies, corpus.Movie{
			ID:         id,
			Title:      r["title"],
			Year:       year,
			IMDBRating: rating,
			IMDBVotes:  votes,
		})
		return nil
	})
	return movies, err
}

func loadCharacters(path string) ([]corpus.Character, error) {
	var characters []corpus.Character
	err := readCSV(path, func(r row) error {
		id, err := atoi(r, "character_id")
		if err != nil {
			return err
		}
		movieID, err := atoi(r, "movie_id")
		if err != nil {
			return err
		}
		characters = append(characters, corpus.Character{
			ID:      id,
			Name:    r["name"],
			MovieID: movieID,
			Gender:  strings.TrimSpace(r["gender"]),
		})
		return nil
	})
	return characters, err
}

func loadConversations(path string) ([]corpus.Conversation, error) {
	var conversations []corpus.Conversation
	err := readCSV(path, func(r row) error {
		id, err := atoi(r, "conversation_id")
		if err != nil {
			return err
		}
		movieID, err := atoi(r, "movie_id")
		if err != nil {
			return err
		}
		c1, err := atoi(r, "character1_id")
		if err != nil {
			return err
		}
		c2, err := atoi(r, "character2_id")
		if err != nil {
			return err
		}
		conversations = append(conversations, corpus.Conversation{
			ID:           id,
			MovieID:      movieID,
			Character1ID: c1,
			Character2ID: c2,
		})
		return nil
	})
	return conversations, err
}

func loadLines(path string) ([]corpus.Line, error) {
	var lines []corpus.Line
	err := readCSV(path, func(r row) error {
		id, err := atoi(r, "line_id")
		if err != nil {
			return err
		}
		conversationID, err := atoi(r, "conversation_id")
		if err != nil {
			return err
		}
		characterID, err := atoi(r, "character_id")
		if err != nil {
			return err
		}
		movieID, err := atoi(r, "movie_id")
		if err != nil {
			return err
		}
		sortOrder, err := atoi(r, "line_sort")
		if err != nil {
			return err
		}
		lines = append(lines, corpus.Line{
			ID:             id,
			ConversationID: conversationID,
			CharacterID:    characterID,
			MovieID:        movieID,
			LineSort:       sortOrder,
			Text:           r["line_text"],
		})
		return nil
	})
	return lines, err
}

func atoi(r row, col string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r[col]))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

func atof(r row, col string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

// parseYear accepts plain years plus the "1998/I" variants that appear
// in the IMDB-sourced data by taking the leading digit run.
func parseYear(v string) (int, error) {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("column year: %q is not a year", v)
	}
	return strconv.Atoi(v[:end])
}
