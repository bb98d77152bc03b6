package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports"
	"payment-portal/internal/core/ports/mocks"
	"payment-portal/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing
type mockTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (m *mockTx) Rollback(_ context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

func (m *mockTx) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

type authTestDeps struct {
	svc         *AuthServiceImpl
	userRepo    *mocks.MockUserRepository
	accountRepo *mocks.MockAccountRepository
	transactor  *mocks.MockDBTransactor
	hashSvc     *mocks.MockHashService
	tokenSvc    *mocks.MockTokenService
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		userRepo:    mocks.NewMockUserRepository(ctrl),
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		hashSvc:     mocks.NewMockHashService(ctrl),
		tokenSvc:    mocks.NewMockTokenService(ctrl),
	}
	d.svc = NewAuthService(d.userRepo, d.accountRepo, d.transactor, d.hashSvc, d.tokenSvc, zerolog.Nop())
	return d
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestAuthService_Signup_Success(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()
	tx := &mockTx{}

	req := ports.SignupRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "StrongP@ss123"}

	d.userRepo.EXPECT().GetByEmail(ctx, req.Email).Return(nil, nil)
	d.hashSvc.EXPECT().Hash(req.Password).Return("$argon2id$hashed", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.userRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, u *domain.User) (int64, error) {
			assert.Equal(t, "$argon2id$hashed", u.PasswordHash)
			assert.Equal(t, "jdoe", u.Username)
			return 7, nil
		})
	d.accountRepo.EXPECT().CreateDefault(ctx, tx, int64(7)).Return(nil)

	user, err := d.svc.Signup(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "jdoe", user.Username)
	assert.True(t, tx.committed)
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	d := setupAuthService(t)

	for _, req := range []ports.SignupRequest{
		{Email: "a@b.c", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@b.c"},
		{Username: "  ", Email: "a@b.c", Password: "x"},
	} {
		_, err := d.svc.Signup(context.Background(), req)
		assertAppErrorCode(t, err, "VAL_000")
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "taken@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := d.svc.Signup(ctx, ports.SignupRequest{Username: "x", Email: "taken@example.com", Password: "pw"})
	assertAppErrorCode(t, err, "AUTH_002")
}

func TestAuthService_Signup_AccountInsertFailsRollsBack(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.userRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, nil)
	d.hashSvc.EXPECT().Hash(gomock.Any()).Return("h", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.userRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(int64(3), nil)
	d.accountRepo.EXPECT().CreateDefault(ctx, tx, int64(3)).Return(errors.New("constraint violation"))

	_, err := d.svc.Signup(ctx, ports.SignupRequest{Username: "x", Email: "x@example.com", Password: "pw"})
	assertAppErrorCode(t, err, "SYS_001")
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()
	user := &domain.User{ID: 9, Username: "jdoe", Email: "jdoe@example.com", PasswordHash: "$argon2id$hashed"}
	expiry := time.Now().Add(24 * time.Hour)

	d.userRepo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	d.hashSvc.EXPECT().Verify("correct_password", user.PasswordHash).Return(true, nil)
	d.tokenSvc.EXPECT().Generate(domain.Session{UserID: 9, Username: "jdoe"}).Return("jwt_token_here", expiry, nil)

	res, err := d.svc.Login(ctx, user.Email, "correct_password")
	require.NoError(t, err)
	assert.Equal(t, "jwt_token_here", res.Token)
	assert.Equal(t, expiry, res.Expiry)
	assert.Equal(t, user, res.User)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)

	_, err := d.svc.Login(ctx, "nobody@example.com", "pw")
	assertAppErrorCode(t, err, "AUTH_004")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(&domain.User{ID: 1, PasswordHash: "h"}, nil)
	d.hashSvc.EXPECT().Verify("wrong", "h").Return(false, nil)

	_, err := d.svc.Login(ctx, "jdoe@example.com", "wrong")
	assertAppErrorCode(t, err, "AUTH_001")
}

func TestAuthService_Login_MissingInput(t *testing.T) {
	d := setupAuthService(t)

	_, err := d.svc.Login(context.Background(), "", "pw")
	assertAppErrorCode(t, err, "VAL_000")
}

func TestAuthService_CurrentUser(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByID(ctx, int64(5)).Return(&domain.User{ID: 5, Username: "eve"}, nil)
	d.userRepo.EXPECT().GetByID(ctx, int64(6)).Return(nil, nil)
	d.userRepo.EXPECT().GetByID(ctx, int64(7)).Return(nil, errors.New("conn reset"))

	user, err := d.svc.CurrentUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "eve", user.Username)

	_, err = d.svc.CurrentUser(ctx, 6)
	assertAppErrorCode(t, err, "AUTH_004")

	_, err = d.svc.CurrentUser(ctx, 7)
	assertAppErrorCode(t, err, "SYS_001")
}
