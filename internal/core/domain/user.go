package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// User is a portal account holder.
type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountSummary holds the balances shown on the dashboard.
type AccountSummary struct {
	UserID         int64           `json:"-"`
	MainBalance    decimal.Decimal `json:"main_balance"`
	SavingsBalance decimal.Decimal `json:"savings_balance"`
	CreditBalance  decimal.Decimal `json:"credit_balance"`
	RewardPoints   int64           `json:"reward_points"`
}

// Session is the process-wide "current user" for one logged-in browser.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Key returns the session's registry key.
func (s Session) Key() string {
	return strconv.FormatInt(s.UserID, 10)
}

// DisplayName falls back to a generic label when no username is known.
func (s Session) DisplayName() string {
	if s.Username == "" {
		return "User"
	}
	return s.Username
}
