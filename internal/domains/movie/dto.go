package movie

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sort keys accepted by the movies list endpoint.
const (
	SortTitle  = "movie_title"
	SortYear   = "year"
	SortRating = "rating"
)

// ListMoviesRequest carries the query parameters of GET /movies.
type ListMoviesRequest struct {
	Name   string
	Sort   string
	Limit  int
	Offset int
}

func (r ListMoviesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sort, validation.Required, validation.In(SortTitle, SortYear, SortRating)),
		validation.Field(&r.Limit, validation.Min(0)),
		validation.Field(&r.Offset, validation.Min(0)),
	)
}

// ListItem is one row of GET /movies.
type ListItem struct {
	MovieID    int     `json:"movie_id"`
	MovieTitle string  `json:"movie_title"`
	Year       int     `json:"year"`
	IMDBRating float64 `json:"imdb_rating"`
	IMDBVotes  int     `json:"imdb_votes"`
}

// TopCharacter is one entry of a movie's top-characters ranking.
type TopCharacter struct {
	CharacterID int    `json:"character_id"`
	Character   string `json:"character"`
	NumLines    int    `json:"num_lines"`
}

// Detail is the body of GET /movies/:id.
type Detail struct {
	MovieID       int            `json:"movie_id"`
	Title         string         `json:"title"`
	TopCharacters []TopCharacter `json:"top_characters"`
}
