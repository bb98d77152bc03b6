package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"payment-portal/internal/adapter/view"
	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports"
	"payment-portal/internal/workflow"
	"payment-portal/pkg/apperror"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// PortalOptions configures the page registry and every page it opens.
type PortalOptions struct {
	Directory   workflow.RecipientDirectory
	Submitter   workflow.Submitter
	Scheduler   workflow.Scheduler
	Gallery     workflow.GalleryConfig
	ErrorTTL    time.Duration
	SuccessTTL  time.Duration
	MaxSessions int
	SessionTTL  time.Duration // idle lifetime; zero keeps pages until evicted or closed
}

type portalPage struct {
	page *workflow.Page
	view *view.Snapshot
}

// PortalServiceImpl implements ports.PortalService. Each session key owns at
// most one page; replaced, evicted and expired pages are closed.
type PortalServiceImpl struct {
	opts  PortalOptions
	mu    sync.Mutex // serialises Open, Close and lookups
	pages *expirable.LRU[string, *portalPage]
	log   zerolog.Logger
}

func NewPortalService(opts PortalOptions, log zerolog.Logger) (*PortalServiceImpl, error) {
	if opts.Directory == nil {
		return nil, fmt.Errorf("portal: recipient directory is required")
	}
	if opts.MaxSessions <= 0 {
		return nil, fmt.Errorf("portal: max sessions must be greater than zero")
	}
	if opts.Submitter == nil {
		opts.Submitter = workflow.NewAcceptingSubmitter(log.With().Str("component", "submitter").Logger())
	}

	s := &PortalServiceImpl{opts: opts, log: log}
	s.pages = expirable.NewLRU[string, *portalPage](opts.MaxSessions, s.onEvict, opts.SessionTTL)
	return s, nil
}

func (s *PortalServiceImpl) onEvict(key string, p *portalPage) {
	p.page.Close()
	s.log.Debug().Str("session", key).Str("page_id", p.page.ID()).Msg("portal page closed")
}

// Open replaces any page the session already has with a fresh one.
func (s *PortalServiceImpl) Open(_ context.Context, session domain.Session) (*domain.PageState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := session.Key()
	s.pages.Remove(key)

	snap := view.NewSnapshot()
	page := workflow.NewPage(session, workflow.PageDeps{
		Directory:  s.opts.Directory,
		View:       snap,
		Scheduler:  s.opts.Scheduler,
		Submitter:  s.opts.Submitter,
		Gallery:    s.opts.Gallery,
		ErrorTTL:   s.opts.ErrorTTL,
		SuccessTTL: s.opts.SuccessTTL,
		Log:        s.log,
	})
	entry := &portalPage{page: page, view: snap}
	page.Open()
	s.pages.Add(key, entry)

	s.log.Info().Int64("user_id", session.UserID).Str("page_id", page.ID()).Msg("portal page opened")
	return entry.state(), nil
}

func (s *PortalServiceImpl) Snapshot(_ context.Context, session domain.Session) (*domain.PageState, error) {
	entry, err := s.lookup(session)
	if err != nil {
		return nil, err
	}
	return entry.state(), nil
}

// Select routes a recipient id through the page's selection. An unknown id
// clears the selection and reports the recipient as not found.
func (s *PortalServiceImpl) Select(_ context.Context, session domain.Session, recipientID string) (*domain.PageState, error) {
	entry, err := s.lookup(session)
	if err != nil {
		return nil, err
	}
	if _, ok := entry.page.SelectRecipient(recipientID); !ok {
		return entry.state(), apperror.NotFound("Recipient")
	}
	return entry.state(), nil
}

func (s *PortalServiceImpl) ClearSelection(_ context.Context, session domain.Session) (*domain.PageState, error) {
	entry, err := s.lookup(session)
	if err != nil {
		return nil, err
	}
	entry.page.ClearSelection()
	return entry.state(), nil
}

// Submit runs one submission. The outcome is returned even when err is set so
// the caller can show the rejection message.
func (s *PortalServiceImpl) Submit(ctx context.Context, session domain.Session, form domain.TransferForm) (*ports.TransferOutcome, error) {
	entry, err := s.lookup(session)
	if err != nil {
		return nil, err
	}

	res, err := entry.page.Submit(ctx, form)
	outcome := &ports.TransferOutcome{
		Message:  res.Message,
		Transfer: res.Transfer,
		State:    entry.state(),
	}
	if err != nil {
		return outcome, mapSubmitError(err)
	}
	return outcome, nil
}

// Close tears the session's page down. Closing a session without a page is
// not an error.
func (s *PortalServiceImpl) Close(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages.Remove(session.Key())
	return nil
}

func (s *PortalServiceImpl) Recipients(_ context.Context) []domain.Recipient {
	return s.opts.Directory.ListAll()
}

// Shutdown closes every open page.
func (s *PortalServiceImpl) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages.Purge()
}

// Len reports the number of open pages.
func (s *PortalServiceImpl) Len() int {
	return s.pages.Len()
}

// lookup returns the session's page and restarts its expiry.
func (s *PortalServiceImpl) lookup(session domain.Session) (*portalPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := session.Key()
	entry, ok := s.pages.Get(key)
	if !ok {
		return nil, apperror.ErrSessionNotOpen()
	}
	s.pages.Add(key, entry)
	return entry, nil
}

func (p *portalPage) state() *domain.PageState {
	st := p.view.State()
	st.PageID = p.page.ID()
	st.DisplayName = p.page.Session().DisplayName()
	st.Phase = string(p.page.State())
	return &st
}

func mapSubmitError(err error) error {
	var verr *workflow.ValidationError
	switch {
	case errors.Is(err, workflow.ErrMissingRecipient):
		return apperror.ErrMissingRecipient(workflow.ErrMissingRecipient.Message)
	case errors.Is(err, workflow.ErrInvalidAmount):
		return apperror.ErrInvalidAmount(workflow.ErrInvalidAmount.Message)
	case errors.As(err, &verr):
		return apperror.Validation(verr.Message)
	case errors.Is(err, workflow.ErrSubmissionInFlight):
		return apperror.ErrSubmissionInFlight()
	default:
		return apperror.ErrSubmissionFailed(err)
	}
}
