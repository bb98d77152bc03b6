package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"payment-portal/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controllerFixture struct {
	view       *recordingView
	sched      *manualScheduler
	selection  *RecipientSelection
	controller *TransferController
}

func newControllerFixture(submitter Submitter) *controllerFixture {
	view := newRecordingView()
	sched := &manualScheduler{}
	selection := NewRecipientSelection(mustDirectory(DefaultRecipients()), view)
	slot := NewMessageSlot(view, sched)
	return &controllerFixture{
		view:       view,
		sched:      sched,
		selection:  selection,
		controller: NewTransferController(selection, slot, view, submitter, ControllerConfig{}, zerolog.Nop()),
	}
}

func TestTransferController_Submit_Success(t *testing.T) {
	f := newControllerFixture(nil)

	res, err := f.controller.Submit(context.Background(), domain.TransferForm{
		RecipientID: "1",
		Amount:      "100",
		Description: "rent",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Transfer)
	assert.Equal(t, "Alice Smith", res.Transfer.Recipient.Name)
	assert.Equal(t, "rent", res.Transfer.Description)

	assert.Equal(t, domain.MessageKindSuccess, res.Message.Kind)
	assert.Equal(t, "Successfully transferred $100.00 to Alice Smith", res.Message.Text)
	assert.Contains(t, res.Message.Text, "$100.00")
	assert.Contains(t, res.Message.Text, "Alice Smith")
	assert.Equal(t, domain.DefaultSuccessMessageTTL, res.Message.ExpiresAfter)

	assert.True(t, f.view.currentForm().IsZero())
	assert.Equal(t, 1, f.view.resets)
	assert.Nil(t, f.view.currentDetail())
	_, selected := f.selection.Current()
	assert.False(t, selected)
	assert.Equal(t, StateIdle, f.controller.State())

	f.sched.Advance(5 * time.Second)
	assert.Nil(t, f.view.currentMessage())
}

func TestTransferController_Submit_UsesCurrentSelection(t *testing.T) {
	f := newControllerFixture(nil)
	f.selection.Select("4")

	res, err := f.controller.Submit(context.Background(), domain.TransferForm{Amount: "1234.5"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully transferred $1,234.50 to David Brown", res.Message.Text)
}

func TestTransferController_Submit_MissingRecipient(t *testing.T) {
	f := newControllerFixture(nil)

	form := domain.TransferForm{Amount: "50", Description: "lunch"}
	res, err := f.controller.Submit(context.Background(), form)

	assert.ErrorIs(t, err, ErrMissingRecipient)
	assert.Nil(t, res.Transfer)
	assert.Equal(t, domain.MessageKindError, res.Message.Kind)
	assert.Equal(t, ErrMissingRecipient.Message, res.Message.Text)
	assert.Equal(t, domain.DefaultErrorMessageTTL, res.Message.ExpiresAfter)

	assert.Equal(t, form, f.view.currentForm())
	assert.Zero(t, f.view.resets)
	assert.Equal(t, StateIdle, f.controller.State())

	f.sched.Advance(3 * time.Second)
	assert.Nil(t, f.view.currentMessage())
}

func TestTransferController_Submit_UnknownRecipientIsMissing(t *testing.T) {
	f := newControllerFixture(nil)
	f.selection.Select("1")

	_, err := f.controller.Submit(context.Background(), domain.TransferForm{RecipientID: "77", Amount: "5"})
	assert.ErrorIs(t, err, ErrMissingRecipient)
	assert.Nil(t, f.view.currentDetail())
}

func TestTransferController_Submit_InvalidAmount(t *testing.T) {
	tests := []string{"", "0", "-5", "abc"}

	for _, amount := range tests {
		t.Run(amount, func(t *testing.T) {
			f := newControllerFixture(SubmitterFunc(func(context.Context, domain.AcceptedTransfer) error {
				t.Fatal("submitter must not be called for invalid input")
				return nil
			}))

			res, err := f.controller.Submit(context.Background(), domain.TransferForm{RecipientID: "2", Amount: amount})
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.Equal(t, ErrInvalidAmount.Message, res.Message.Text)
			assert.Zero(t, f.view.resets)

			// the selection stays so the user can correct the amount
			cur, ok := f.selection.Current()
			require.True(t, ok)
			assert.Equal(t, "Bob Johnson", cur.Name)
		})
	}
}

func TestTransferController_Submit_SubmitterError(t *testing.T) {
	boom := errors.New("network down")
	f := newControllerFixture(SubmitterFunc(func(context.Context, domain.AcceptedTransfer) error {
		return boom
	}))

	form := domain.TransferForm{RecipientID: "3", Amount: "10"}
	res, err := f.controller.Submit(context.Background(), form)

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res.Transfer)
	assert.Equal(t, domain.MessageKindError, res.Message.Kind)
	assert.Equal(t, failedSubmissionText, res.Message.Text)
	assert.Zero(t, f.view.resets)
	assert.Equal(t, form, f.view.currentForm())
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestTransferController_Submit_InFlightGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := newControllerFixture(SubmitterFunc(func(context.Context, domain.AcceptedTransfer) error {
		close(entered)
		<-release
		return nil
	}))

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.controller.Submit(context.Background(), domain.TransferForm{RecipientID: "1", Amount: "20"})
	}()

	<-entered
	assert.Equal(t, StateSubmitting, f.controller.State())

	_, err := f.controller.Submit(context.Background(), domain.TransferForm{RecipientID: "2", Amount: "30"})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)

	cur := f.view.currentMessage()
	require.NotNil(t, cur)
	assert.Equal(t, "Successfully transferred $20.00 to Alice Smith", cur.Text)
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestTransferController_RapidSubmissionsLeaveOneMessage(t *testing.T) {
	f := newControllerFixture(nil)

	_, err := f.controller.Submit(context.Background(), domain.TransferForm{Amount: "10"})
	require.Error(t, err)

	f.sched.Advance(time.Second)
	second, err := f.controller.Submit(context.Background(), domain.TransferForm{RecipientID: "5", Amount: "10"})
	require.NoError(t, err)

	// the rejected message would have expired at 3s
	f.sched.Advance(2500 * time.Millisecond)
	cur := f.view.currentMessage()
	require.NotNil(t, cur)
	assert.Equal(t, second.Message.Token, cur.Token)
	assert.Equal(t, "Successfully transferred $10.00 to Emma Davis", cur.Text)

	f.sched.Advance(2500 * time.Millisecond)
	assert.Nil(t, f.view.currentMessage())
}
