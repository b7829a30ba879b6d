package models

import "time"

// Director represents a row in the directors table. It doubles as the
// request body for POST and PUT /directors.
type Director struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birthyear"`
}

// Movie represents a row in the movies table. Director is free text and is
// not linked to the directors table.
type Movie struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     int    `json:"year"`
}

// UpdatedResponse is returned by PUT on a catalog resource.
type UpdatedResponse struct {
	Updated int64 `json:"updated"`
}

// DeletedResponse is returned by DELETE on a catalog resource.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
