package service

import (
	"context"
	"testing"

	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAccountService_GetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(repo)
	ctx := context.Background()

	want := &domain.AccountSummary{
		UserID:       1,
		MainBalance:  decimal.RequireFromString("1250.75"),
		RewardPoints: 40,
	}
	repo.EXPECT().GetSummary(ctx, int64(1)).Return(want, nil)
	repo.EXPECT().GetSummary(ctx, int64(2)).Return(nil, nil)

	got, err := svc.GetSummary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.GetSummary(ctx, 2)
	assertAppErrorCode(t, err, "AUTH_004")
}
