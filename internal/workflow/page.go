package workflow

import (
	"context"
	"sync"
	"time"

	"payment-portal/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PageDeps are the collaborators injected into every Page.
type PageDeps struct {
	Directory  RecipientDirectory
	View       View
	Scheduler  Scheduler
	Submitter  Submitter
	Gallery    GalleryConfig // empty BaseURL disables the gallery
	ErrorTTL   time.Duration
	SuccessTTL time.Duration
	Log        zerolog.Logger
}

// Page is one user's transfer page, alive from Open until Close.
type Page struct {
	id         string
	session    domain.Session
	directory  RecipientDirectory
	view       View
	selection  *RecipientSelection
	slot       *MessageSlot
	controller *TransferController
	gallery    *QRGalleryLoader

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	galleryDone <-chan struct{}
}

func NewPage(session domain.Session, deps PageDeps) *Page {
	log := deps.Log.With().Int64("user_id", session.UserID).Logger()

	selection := NewRecipientSelection(deps.Directory, deps.View)
	slot := NewMessageSlot(deps.View, deps.Scheduler)
	controller := NewTransferController(selection, slot, deps.View, deps.Submitter, ControllerConfig{
		ErrorTTL:   deps.ErrorTTL,
		SuccessTTL: deps.SuccessTTL,
	}, log.With().Str("component", "transfer_controller").Logger())

	var gallery *QRGalleryLoader
	if deps.Gallery.BaseURL != "" {
		gallery = NewQRGalleryLoader(deps.Gallery, deps.View, log.With().Str("component", "qr_gallery").Logger())
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Page{
		id:         uuid.NewString(),
		session:    session,
		directory:  deps.Directory,
		view:       deps.View,
		selection:  selection,
		slot:       slot,
		controller: controller,
		gallery:    gallery,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (p *Page) ID() string { return p.id }

func (p *Page) Session() domain.Session { return p.session }

// Open renders the recent recipients (or their empty state) and starts the
// gallery load in the background.
func (p *Page) Open() {
	recent := p.directory.ListRecent()
	if len(recent) == 0 {
		p.view.ShowEmptyState(RecentRecipientsContainer, "fa-users", "No recent recipients")
	} else {
		p.view.RenderRecentRecipients(recent)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gallery != nil && p.galleryDone == nil {
		p.galleryDone = p.gallery.Load(p.ctx, p.session.UserID)
	}
}

// GalleryDone is closed once the gallery load has finished; nil when no load
// was started.
func (p *Page) GalleryDone() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryDone
}

// SelectRecipient is the quick-select / selector-change entry point.
func (p *Page) SelectRecipient(raw string) (domain.Recipient, bool) {
	return p.selection.Select(raw)
}

func (p *Page) ClearSelection() {
	p.selection.Clear()
}

func (p *Page) Submit(ctx context.Context, form domain.TransferForm) (SubmitResult, error) {
	return p.controller.Submit(ctx, form)
}

func (p *Page) State() SubmissionState {
	return p.controller.State()
}

func (p *Page) Message() (domain.TransientMessage, bool) {
	return p.slot.Current()
}

// Close cancels pending message timers and any in-flight gallery fetch.
func (p *Page) Close() {
	p.cancel()
	p.slot.Close()
}
