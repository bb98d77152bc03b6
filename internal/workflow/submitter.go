package workflow

import (
	"context"

	"payment-portal/internal/core/domain"
	"payment-portal/pkg/format"

	"github.com/rs/zerolog"
)

// Submitter hands a validated transfer to whatever moves the money. It is
// the only point between validation and completion that may block.
type Submitter interface {
	Submit(ctx context.Context, transfer domain.AcceptedTransfer) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, transfer domain.AcceptedTransfer) error

func (f SubmitterFunc) Submit(ctx context.Context, transfer domain.AcceptedTransfer) error {
	return f(ctx, transfer)
}

// AcceptingSubmitter accepts every validated transfer. There is no payment
// network behind the portal; transfers are only logged.
type AcceptingSubmitter struct {
	log zerolog.Logger
}

func NewAcceptingSubmitter(log zerolog.Logger) *AcceptingSubmitter {
	return &AcceptingSubmitter{log: log}
}

func (s *AcceptingSubmitter) Submit(_ context.Context, t domain.AcceptedTransfer) error {
	s.log.Info().
		Str("recipient_id", t.Recipient.ID.String()).
		Str("amount", format.FormatCurrency(t.Amount)).
		Msg("transfer accepted")
	return nil
}
