package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-portal/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, username, email, password_hash, created_at`

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts u inside tx and returns the generated user_id.
func (r *UserRepo) Create(ctx context.Context, tx pgx.Tx, u *domain.User) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4) RETURNING user_id`

	var id int64
	if err := tx.QueryRow(ctx, query, u.Username, u.Email, u.PasswordHash, u.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id), "get user by id")
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email), "get user by email")
}

func (r *UserRepo) scanUser(row pgx.Row, op string) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
