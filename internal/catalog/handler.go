// Package catalog serves the director and movie CRUD routes. Both resources
// share one generic handler set over a store.Store.
package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/filmdb/movies-api/internal/common"
	"github.com/filmdb/movies-api/internal/httpx"
	"github.com/filmdb/movies-api/internal/logging"
	"github.com/filmdb/movies-api/internal/models"
)

// Store defines the persistence operations a resource needs.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Insert(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id int64, v T) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Resource holds the HTTP handlers for one entity type.
type Resource[T any] struct {
	store         Store[T]
	noun          string
	validate      func(T) error
	createdStatus int
	logger        logging.Logger
}

// Mount registers the read routes publicly and the write routes behind
// protect.
func (res *Resource[T]) Mount(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Get("/", res.List)
	r.Get("/{id}", res.Get)
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/", res.Create)
		r.Put("/{id}", res.Update)
		r.Delete("/{id}", res.Delete)
	})
}

// List returns every row.
func (res *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := res.store.List(r.Context())
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// Get returns a single row.
func (res *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}

	item, err := res.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, res.noun+" not found")
			return
		}
		httpx.Fail(w, r, res.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

// Create inserts a row and echoes it back with its generated id.
func (res *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var v T
	if err := httpx.DecodeJSON(w, r, &v); err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}
	if err := res.validate(v); err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}

	created, err := res.store.Insert(r.Context(), v)
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}
	httpx.WriteJSON(w, res.createdStatus, created)
}

// Update overwrites every mutable column and reports the affected row count.
func (res *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}

	var v T
	if err := httpx.DecodeJSON(w, r, &v); err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}

	n, err := res.store.Update(r.Context(), id, v)
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.UpdatedResponse{Updated: n})
}

// Delete removes a row and reports the affected row count.
func (res *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}

	n, err := res.store.Delete(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, res.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.DeletedResponse{Deleted: n})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, common.WrapError(common.ErrValidation, "invalid id", err)
	}
	return id, nil
}
