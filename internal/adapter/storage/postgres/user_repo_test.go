package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-portal/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser() *domain.User {
	return &domain.User{
		ID:           11,
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$salt$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"user_id", "username", "email", "password_hash", "created_at"}).
		AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
}

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users .+ RETURNING user_id").
		WithArgs(u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(11)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	id, err := repo.Create(context.Background(), tx, u)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), tx, u)
	assert.ErrorContains(t, err, "insert user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs(u.Email).
		WillReturnRows(userRow(u))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE user_id").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "username", "email", "password_hash", "created_at"}))

	got, err := repo.GetByID(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE user_id").
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetByID(context.Background(), 1)
	assert.ErrorContains(t, err, "get user by id")
}
