// Package entity contains the core business objects of the project.
package entity

import "time"

// Movie represents a single catalog entry together with its classification
// lookups and user ratings.
type Movie struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	Certificate     string
	ReleaseDate     time.Time
	AvgRating       float64
	Poster          string
	Genres          []Genre
	Formats         []Format
	Languages       []Language
	Ratings         []Rating
}

// Genre is a catalog classification lookup (e.g. "Action", "Drama").
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Format is a presentation format lookup (e.g. "2D", "IMAX").
type Format struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Language is a language lookup for a movie's available audio tracks.
type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Rating is a single user review attached to a movie.
type Rating struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	Username  string    `json:"username"`
	Score     float64   `json:"score"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}
