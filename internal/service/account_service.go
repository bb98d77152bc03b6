package service

import (
	"context"
	"fmt"

	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports"
	"payment-portal/pkg/apperror"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	accountRepo ports.AccountRepository
}

func NewAccountService(accountRepo ports.AccountRepository) *AccountServiceImpl {
	return &AccountServiceImpl{accountRepo: accountRepo}
}

func (s *AccountServiceImpl) GetSummary(ctx context.Context, userID int64) (*domain.AccountSummary, error) {
	summary, err := s.accountRepo.GetSummary(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account summary: %w", err))
	}
	if summary == nil {
		return nil, apperror.ErrUserNotFound()
	}
	return summary, nil
}
