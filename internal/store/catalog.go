package store

import "github.com/filmdb/movies-api/internal/models"

var directorsTable = Table[models.Director]{
	Name:    "directors",
	Columns: []string{"name", "birthyear"},
	Scan: func(s Scanner) (models.Director, error) {
		var d models.Director
		err := s.Scan(&d.ID, &d.Name, &d.BirthYear)
		return d, err
	},
	Values: func(d models.Director) []any {
		return []any{d.Name, d.BirthYear}
	},
	WithID: func(d models.Director, id int64) models.Director {
		d.ID = id
		return d
	},
}

var moviesTable = Table[models.Movie]{
	Name:    "movies",
	Columns: []string{"title", "director", "year"},
	OrderBy: "id ASC",
	Scan: func(s Scanner) (models.Movie, error) {
		var m models.Movie
		err := s.Scan(&m.ID, &m.Title, &m.Director, &m.Year)
		return m, err
	},
	Values: func(m models.Movie) []any {
		return []any{m.Title, m.Director, m.Year}
	},
	WithID: func(m models.Movie, id int64) models.Movie {
		m.ID = id
		return m
	},
}

func NewDirectorStore(db DBTX, d Dialect) *Store[models.Director] {
	return NewStore(db, d, directorsTable)
}

func NewMovieStore(db DBTX, d Dialect) *Store[models.Movie] {
	return NewStore(db, d, moviesTable)
}
