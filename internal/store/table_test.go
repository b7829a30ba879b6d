package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmdb/movies-api/internal/common"
	"github.com/filmdb/movies-api/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func intPtr(v int) *int { return &v }

func TestDirectorStore_List(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, name, birthyear FROM directors`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthyear"}).
			AddRow(int64(1), "Akira Kurosawa", int64(1910)).
			AddRow(int64(2), "Unknown", nil))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Director{
		{ID: 1, Name: "Akira Kurosawa", BirthYear: intPtr(1910)},
		{ID: 2, Name: "Unknown"},
	}, got)
}

func TestDirectorStore_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, name, birthyear FROM directors`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthyear"}))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDirectorStore_List_DBError(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, name, birthyear FROM directors`).
		WillReturnError(errors.New("db down"))

	_, err := s.List(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, "failed to list directors", common.Message(err, ""))
}

func TestMovieStore_List_Ordered(t *testing.T) {
	db, mock := newMock(t)
	s := NewMovieStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, title, director, year FROM movies ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "director", "year"}).
			AddRow(int64(1), "Ran", "Akira Kurosawa", int64(1985)))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Movie{{ID: 1, Title: "Ran", Director: "Akira Kurosawa", Year: 1985}}, got)
}

func TestDirectorStore_Get(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, name, birthyear FROM directors WHERE id = $1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthyear"}).AddRow(int64(7), "Agnès Varda", int64(1928)))

	got, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.Director{ID: 7, Name: "Agnès Varda", BirthYear: intPtr(1928)}, got)
}

func TestDirectorStore_Get_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, name, birthyear FROM directors WHERE id = $1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrStorage)
}

func TestDirectorStore_Get_DBError(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`SELECT id, name, birthyear FROM directors WHERE id = $1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("conn reset"))

	_, err := s.Get(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestDirectorStore_Insert(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`INSERT INTO directors (name, birthyear) VALUES ($1, $2) RETURNING id`).
		WithArgs("X", 1990).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	got, err := s.Insert(context.Background(), models.Director{Name: "X", BirthYear: intPtr(1990)})
	require.NoError(t, err)
	assert.Equal(t, models.Director{ID: 42, Name: "X", BirthYear: intPtr(1990)}, got)
}

func TestDirectorStore_Insert_DBError(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectQuery(`INSERT INTO directors (name, birthyear) VALUES ($1, $2) RETURNING id`).
		WithArgs("X", nil).
		WillReturnError(errors.New("read-only"))

	_, err := s.Insert(context.Background(), models.Director{Name: "X"})
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestMovieStore_Update(t *testing.T) {
	db, mock := newMock(t)
	s := NewMovieStore(db, Postgres)

	mock.ExpectExec(`UPDATE movies SET title = $1, director = $2, year = $3 WHERE id = $4`).
		WithArgs("Ikiru", "Akira Kurosawa", 1952, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := s.Update(context.Background(), 3, models.Movie{Title: "Ikiru", Director: "Akira Kurosawa", Year: 1952})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDirectorStore_Update_MissingIDIsZero(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectExec(`UPDATE directors SET name = $1, birthyear = $2 WHERE id = $3`).
		WithArgs("Nobody", nil, int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := s.Update(context.Background(), 999, models.Director{Name: "Nobody"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDirectorStore_Update_DBError(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectExec(`UPDATE directors SET name = $1, birthyear = $2 WHERE id = $3`).
		WithArgs("X", nil, int64(1)).
		WillReturnError(errors.New("locked"))

	_, err := s.Update(context.Background(), 1, models.Director{Name: "X"})
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestDirectorStore_Delete(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectExec(`DELETE FROM directors WHERE id = $1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM directors WHERE id = $1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := s.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDirectorStore_Delete_DBError(t *testing.T) {
	db, mock := newMock(t)
	s := NewDirectorStore(db, Postgres)

	mock.ExpectExec(`DELETE FROM directors WHERE id = $1`).
		WithArgs(int64(5)).
		WillReturnError(errors.New("gone"))

	_, err := s.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestSQLiteRebind(t *testing.T) {
	q := `UPDATE movies SET title = $1, director = $2, year = $3 WHERE id = $4`
	assert.Equal(t, `UPDATE movies SET title = ?, director = ?, year = ? WHERE id = ?`, SQLite.Rebind(q))
	assert.Equal(t, q, Postgres.Rebind(q))
}

func TestNewStore_SQLiteQueries(t *testing.T) {
	s := NewDirectorStore(nil, SQLite)

	assert.Equal(t, `INSERT INTO directors (name, birthyear) VALUES (?, ?) RETURNING id`, s.insSQL)
	assert.False(t, regexp.MustCompile(`\$\d`).MatchString(s.updSQL+s.getSQL+s.delSQL))
}
