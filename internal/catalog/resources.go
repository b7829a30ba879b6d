package catalog

import (
	"net/http"

	"github.com/filmdb/movies-api/internal/common"
	"github.com/filmdb/movies-api/internal/logging"
	"github.com/filmdb/movies-api/internal/models"
)

// NewDirectors serves /directors. Create answers 200 and only requires a name.
func NewDirectors(store Store[models.Director], logger logging.Logger) *Resource[models.Director] {
	return &Resource[models.Director]{
		store:         store,
		noun:          "Director",
		validate:      validateDirector,
		createdStatus: http.StatusOK,
		logger:        logger.With("resource", "directors"),
	}
}

// NewMovies serves /movies. Create answers 201.
func NewMovies(store Store[models.Movie], logger logging.Logger) *Resource[models.Movie] {
	return &Resource[models.Movie]{
		store:         store,
		noun:          "Movie",
		validate:      validateMovie,
		createdStatus: http.StatusCreated,
		logger:        logger.With("resource", "movies"),
	}
}

func validateDirector(d models.Director) error {
	if d.Name == "" {
		return common.NewError(common.ErrValidation, "name is required")
	}
	return nil
}

func validateMovie(m models.Movie) error {
	if m.Title == "" || m.Director == "" || m.Year == 0 {
		return common.NewError(common.ErrValidation, "title, director, and year are required")
	}
	return nil
}
