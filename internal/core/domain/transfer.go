package domain

import "github.com/shopspring/decimal"

// TransferForm is the raw, unparsed content of the transfer form.
type TransferForm struct {
	RecipientID string `json:"recipient_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// IsZero reports whether every field is at its default (reset) value.
func (f TransferForm) IsZero() bool {
	return f == TransferForm{}
}

// TransferRequest is built fresh for every submission attempt and discarded
// once the attempt is rejected or completes. It is never persisted.
type TransferRequest struct {
	RecipientID RecipientID
	Amount      string // textual input, parsed by validation
	Description string
}

// AcceptedTransfer is a TransferRequest that passed validation.
type AcceptedTransfer struct {
	Recipient   Recipient
	Amount      decimal.Decimal
	Description string
}
