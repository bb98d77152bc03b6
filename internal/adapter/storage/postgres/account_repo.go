package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-portal/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepo implements ports.AccountRepository over user_accounts.
type AccountRepo struct {
	pool Pool
}

func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// CreateDefault inserts the zeroed summary row of a new user.
func (r *AccountRepo) CreateDefault(ctx context.Context, tx pgx.Tx, userID int64) error {
	query := `INSERT INTO user_accounts (user_id, main_balance, savings_balance, credit_balance, reward_points)
		VALUES ($1, 0.00, 0.00, 0.00, 0)`

	if _, err := tx.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetSummary reads balances as text so NUMERIC precision survives into
// decimal.Decimal.
func (r *AccountRepo) GetSummary(ctx context.Context, userID int64) (*domain.AccountSummary, error) {
	query := `SELECT main_balance::text, savings_balance::text, credit_balance::text, reward_points
		FROM user_accounts WHERE user_id = $1`

	var mainBal, savingsBal, creditBal string
	s := &domain.AccountSummary{UserID: userID}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&mainBal, &savingsBal, &creditBal, &s.RewardPoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account summary: %w", err)
	}

	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{mainBal, &s.MainBalance},
		{savingsBal, &s.SavingsBalance},
		{creditBal, &s.CreditBalance},
	} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return nil, fmt.Errorf("parse balance %q: %w", f.raw, err)
		}
	}
	return s, nil
}
