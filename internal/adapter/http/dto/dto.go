package dto

import (
	"payment-portal/internal/core/domain"
	"payment-portal/pkg/format"
)

// SignupRequest is the request body for POST /api/signup.
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Expiry   int64  `json:"expiry"` // Unix timestamp
}

type CurrentUserResponse struct {
	Username string `json:"username"`
}

// AccountResponse renders balances with two decimal places.
type AccountResponse struct {
	MainBalance    string `json:"main_balance"`
	SavingsBalance string `json:"savings_balance"`
	CreditBalance  string `json:"credit_balance"`
	RewardPoints   int64  `json:"reward_points"`
}

func NewAccountResponse(a *domain.AccountSummary) AccountResponse {
	return AccountResponse{
		MainBalance:    a.MainBalance.StringFixed(2),
		SavingsBalance: a.SavingsBalance.StringFixed(2),
		CreditBalance:  a.CreditBalance.StringFixed(2),
		RewardPoints:   a.RewardPoints,
	}
}

type QRUploadResponse struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mime_type"`
	UploadedAt string `json:"uploaded_at"`
}

func NewQRUploadResponse(q *domain.QRCode) QRUploadResponse {
	return QRUploadResponse{
		ID:         q.ID,
		Filename:   q.Filename,
		MimeType:   q.MimeType,
		UploadedAt: format.FormatDate(q.UploadedAt),
	}
}

// SelectRecipientRequest is the body of PUT /api/portal/selection.
type SelectRecipientRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,recipient_id"`
}

// TransferRequest is the body of POST /api/portal/transfers. An empty
// recipient_id submits to the current selection.
type TransferRequest struct {
	RecipientID string `json:"recipient_id" binding:"omitempty,recipient_id"`
	Amount      string `json:"amount" binding:"max=32"`
	Description string `json:"description" binding:"max=500"`
}

func (r TransferRequest) Form() domain.TransferForm {
	return domain.TransferForm{
		RecipientID: r.RecipientID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// TransferSummary describes an accepted transfer.
type TransferSummary struct {
	RecipientID   string `json:"recipient_id"`
	RecipientName string `json:"recipient_name"`
	Amount        string `json:"amount"`
	Display       string `json:"display"`
	Description   string `json:"description,omitempty"`
}

// TransferResponse is returned for every submission, accepted or not.
type TransferResponse struct {
	Message  domain.TransientMessage `json:"message"`
	Transfer *TransferSummary        `json:"transfer,omitempty"`
	State    *domain.PageState       `json:"state,omitempty"`
}

func NewTransferResponse(msg domain.TransientMessage, t *domain.AcceptedTransfer, state *domain.PageState) TransferResponse {
	resp := TransferResponse{Message: msg, State: state}
	if t != nil {
		resp.Transfer = &TransferSummary{
			RecipientID:   t.Recipient.ID.String(),
			RecipientName: t.Recipient.Name,
			Amount:        t.Amount.StringFixed(2),
			Display:       format.FormatCurrency(t.Amount),
			Description:   t.Description,
		}
	}
	return resp
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}
