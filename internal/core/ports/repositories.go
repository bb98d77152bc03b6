package ports

import (
	"context"

	"payment-portal/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user inside tx and returns the generated ID.
	Create(ctx context.Context, tx pgx.Tx, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccountRepository defines persistence operations for account balances.
type AccountRepository interface {
	// CreateDefault inserts a zeroed summary row for a new user inside tx.
	CreateDefault(ctx context.Context, tx pgx.Tx, userID int64) error
	GetSummary(ctx context.Context, userID int64) (*domain.AccountSummary, error)
}

// QRCodeRepository defines persistence operations for uploaded QR codes.
type QRCodeRepository interface {
	Create(ctx context.Context, qr *domain.QRCode) error
	// GetLatest returns nil, nil when the user has no QR code.
	GetLatest(ctx context.Context, userID int64) (*domain.QRCode, error)
	// ListByUser returns the user's QR codes, newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.QRCode, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
