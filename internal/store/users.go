package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/filmdb/movies-api/internal/common"
	"github.com/filmdb/movies-api/internal/models"
)

// UserStore handles the users table.
type UserStore struct {
	db        DBTX
	dialect   Dialect
	createSQL string
	getSQL    string
}

func NewUserStore(db DBTX, d Dialect) *UserStore {
	return &UserStore{
		db:        db,
		dialect:   d,
		createSQL: d.Rebind(`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`),
		getSQL:    d.Rebind(`SELECT id, username, password FROM users WHERE username = $1`),
	}
}

// Create inserts a user and returns its id. A taken username yields
// common.ErrConflict.
func (s *UserStore) Create(ctx context.Context, username, hashedPassword string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.createSQL, username, hashedPassword).Scan(&id)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return 0, common.WrapError(common.ErrConflict, "username already in use", err)
		}
		return 0, common.WrapError(common.ErrStorage, "failed to create user", err)
	}
	return id, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, s.getSQL, username).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(common.ErrStorage, "failed to get user", err)
	}
	return &u, nil
}
