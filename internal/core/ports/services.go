package ports

import (
	"context"
	"time"

	"payment-portal/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService issues and parses session tokens.
type TokenService interface {
	Generate(session domain.Session) (string, time.Time, error)
	Validate(tokenString string) (*domain.Session, error)
}

// QRListingCache is the Redis layer in front of the QR listing query.
type QRListingCache interface {
	Get(ctx context.Context, userID int64) ([]byte, error) // cached JSON or nil
	Set(ctx context.Context, userID int64, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, userID int64) error
}

// --- Service Ports (Business Logic) ---

// AuthService defines signup/login business logic.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

// SignupRequest holds input for user registration.
type SignupRequest struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	User   *domain.User
	Token  string
	Expiry time.Time
}

// AccountService exposes balance summaries.
type AccountService interface {
	GetSummary(ctx context.Context, userID int64) (*domain.AccountSummary, error)
}

// QRCodeService manages uploaded QR codes.
type QRCodeService interface {
	Upload(ctx context.Context, req UploadQRRequest) (*domain.QRCode, error)
	Latest(ctx context.Context, userID int64) (*domain.QRCode, error)
	List(ctx context.Context, userID int64) ([]domain.QRCodeRecord, error)
}

// UploadQRRequest holds a validated upload.
type UploadQRRequest struct {
	UserID    int64
	Filename  string
	MimeType  string
	ImageData []byte
}

// PortalService owns the per-session transfer pages.
type PortalService interface {
	Open(ctx context.Context, session domain.Session) (*domain.PageState, error)
	Snapshot(ctx context.Context, session domain.Session) (*domain.PageState, error)
	Select(ctx context.Context, session domain.Session, recipientID string) (*domain.PageState, error)
	ClearSelection(ctx context.Context, session domain.Session) (*domain.PageState, error)
	Submit(ctx context.Context, session domain.Session, form domain.TransferForm) (*TransferOutcome, error)
	Close(ctx context.Context, session domain.Session) error
	Recipients(ctx context.Context) []domain.Recipient
}

// TransferOutcome is the result of a portal submission. Message is set for
// rejected submissions too, alongside the returned error.
type TransferOutcome struct {
	Message  domain.TransientMessage
	Transfer *domain.AcceptedTransfer
	State    *domain.PageState
}
