package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"payment-portal/internal/core/domain"
	"payment-portal/pkg/format"

	"github.com/rs/zerolog"
)

// SubmissionState is the phase of the transfer submission state machine.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateValidating SubmissionState = "validating"
	StateRejected   SubmissionState = "rejected"
	StateSubmitting SubmissionState = "submitting"
	StateCompleted  SubmissionState = "completed"
)

// ErrSubmissionInFlight is returned when a submit arrives before the previous
// one has returned to idle.
var ErrSubmissionInFlight = errors.New("transfer submission already in progress")

// failedSubmissionText is shown when the Submitter refuses a valid transfer.
const failedSubmissionText = "Transfer failed. Please try again."

// SubmitResult is the outcome of one submission attempt.
type SubmitResult struct {
	Message  domain.TransientMessage
	Transfer *domain.AcceptedTransfer // nil unless completed
}

// TransferController runs validate -> submit -> notify -> reset.
type TransferController struct {
	mu         sync.Mutex
	state      SubmissionState
	selection  *RecipientSelection
	slot       *MessageSlot
	view       View
	submitter  Submitter
	errorTTL   time.Duration
	successTTL time.Duration
	log        zerolog.Logger
}

// ControllerConfig holds the message lifetimes; zero values use the defaults.
type ControllerConfig struct {
	ErrorTTL   time.Duration
	SuccessTTL time.Duration
}

func NewTransferController(
	selection *RecipientSelection,
	slot *MessageSlot,
	view View,
	submitter Submitter,
	cfg ControllerConfig,
	log zerolog.Logger,
) *TransferController {
	if cfg.ErrorTTL <= 0 {
		cfg.ErrorTTL = domain.DefaultErrorMessageTTL
	}
	if cfg.SuccessTTL <= 0 {
		cfg.SuccessTTL = domain.DefaultSuccessMessageTTL
	}
	if submitter == nil {
		submitter = NewAcceptingSubmitter(log)
	}
	return &TransferController{
		state:      StateIdle,
		selection:  selection,
		slot:       slot,
		view:       view,
		submitter:  submitter,
		errorTTL:   cfg.ErrorTTL,
		successTTL: cfg.SuccessTTL,
		log:        log,
	}
}

// State returns the current phase.
func (c *TransferController) State() SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit processes one form submission. A non-empty form.RecipientID is
// routed through the selection first; an empty one uses the current
// selection. Validation failures return a *ValidationError together with the
// error message that was shown, and leave the form as submitted.
func (c *TransferController) Submit(ctx context.Context, form domain.TransferForm) (SubmitResult, error) {
	if !c.transition(StateIdle, StateValidating) {
		return SubmitResult{}, ErrSubmissionInFlight
	}
	defer c.setState(StateIdle)

	c.view.RenderForm(form)

	var (
		recipient domain.Recipient
		selected  bool
	)
	if form.RecipientID != "" {
		recipient, selected = c.selection.Select(form.RecipientID)
	} else {
		recipient, selected = c.selection.Current()
	}

	req := domain.TransferRequest{Amount: form.Amount, Description: form.Description}
	if selected {
		req.RecipientID = recipient.ID
	}

	amount, err := Validate(req)
	if err != nil {
		c.setState(StateRejected)
		var verr *ValidationError
		text := err.Error()
		if errors.As(err, &verr) {
			text = verr.Message
		}
		msg := c.slot.Show(domain.MessageKindError, text, c.errorTTL)
		c.log.Debug().Str("reason", err.Error()).Msg("transfer rejected")
		return SubmitResult{Message: msg}, err
	}

	c.setState(StateSubmitting)
	transfer := domain.AcceptedTransfer{
		Recipient:   recipient,
		Amount:      amount,
		Description: req.Description,
	}
	if err := c.submitter.Submit(ctx, transfer); err != nil {
		c.log.Error().Err(err).Str("recipient_id", recipient.ID.String()).Msg("transfer submission failed")
		msg := c.slot.Show(domain.MessageKindError, failedSubmissionText, c.errorTTL)
		return SubmitResult{Message: msg}, fmt.Errorf("submitting transfer: %w", err)
	}

	c.setState(StateCompleted)
	text := fmt.Sprintf("Successfully transferred %s to %s", format.FormatCurrency(amount), recipient.Name)
	msg := c.slot.Show(domain.MessageKindSuccess, text, c.successTTL)
	c.view.ResetForm()
	c.selection.Clear()

	return SubmitResult{Message: msg, Transfer: &transfer}, nil
}

func (c *TransferController) transition(from, to SubmissionState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != from {
		return false
	}
	c.state = to
	return true
}

func (c *TransferController) setState(s SubmissionState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
