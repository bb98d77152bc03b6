// Package view holds presentation adapters for the transfer page workflow.
package view

import (
	"maps"
	"slices"
	"sync"

	"payment-portal/internal/core/domain"
	"payment-portal/internal/workflow"
)

var _ workflow.View = (*Snapshot)(nil)

// Snapshot records what the page currently displays so it can be served as
// JSON. It is written from request goroutines, message timers and the gallery
// loader, so every method takes the lock.
type Snapshot struct {
	mu           sync.RWMutex
	recent       []domain.Recipient
	detail       *domain.RecipientDetail
	form         domain.TransferForm
	message      *domain.TransientMessage
	gallery      []domain.QRImage
	placeholders map[string]domain.Placeholder
}

func NewSnapshot() *Snapshot {
	return &Snapshot{placeholders: make(map[string]domain.Placeholder)}
}

func (s *Snapshot) RenderRecentRecipients(recipients []domain.Recipient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = slices.Clone(recipients)
	delete(s.placeholders, workflow.RecentRecipientsContainer)
}

func (s *Snapshot) ShowEmptyState(container, icon, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if container == workflow.RecentRecipientsContainer {
		s.recent = nil
	}
	s.placeholders[container] = domain.Placeholder{Kind: "empty", Icon: icon, Message: message}
}

func (s *Snapshot) RenderRecipientDetail(detail domain.RecipientDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = &detail
}

func (s *Snapshot) ClearRecipientDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
}

func (s *Snapshot) RenderForm(form domain.TransferForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

func (s *Snapshot) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = domain.TransferForm{}
}

func (s *Snapshot) ShowMessage(msg domain.TransientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = &msg
}

// HideMessage clears the message only while token is still on display.
func (s *Snapshot) HideMessage(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.message != nil && s.message.Token == token {
		s.message = nil
	}
}

func (s *Snapshot) AppendQRImage(container string, img domain.QRImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gallery = append(s.gallery, img)
	delete(s.placeholders, container)
}

// State returns a deep copy; PageID, DisplayName and Phase are left for the
// caller, which owns the page.
func (s *Snapshot) State() domain.PageState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.PageState{
		Recent:  slices.Clone(s.recent),
		Form:    s.form,
		Gallery: slices.Clone(s.gallery),
	}
	if st.Recent == nil {
		st.Recent = []domain.Recipient{}
	}
	if st.Gallery == nil {
		st.Gallery = []domain.QRImage{}
	}
	if s.detail != nil {
		d := *s.detail
		st.Detail = &d
	}
	if s.message != nil {
		m := *s.message
		st.Message = &m
	}
	if len(s.placeholders) > 0 {
		st.Placeholders = maps.Clone(s.placeholders)
	}
	return st
}
