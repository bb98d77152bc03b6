package workflow

import (
	"sync"

	"payment-portal/internal/core/domain"
)

// RecipientSelection tracks the chosen recipient. Quick-select clicks and
// direct selector changes both go through Select.
type RecipientSelection struct {
	mu      sync.Mutex
	dir     RecipientDirectory
	view    View
	current *domain.Recipient
}

func NewRecipientSelection(dir RecipientDirectory, view View) *RecipientSelection {
	return &RecipientSelection{dir: dir, view: view}
}

// Select makes raw the current recipient and renders its detail. An id that
// is empty or absent from the directory leaves nothing selected.
func (s *RecipientSelection) Select(raw string) (domain.Recipient, bool) {
	id := domain.NormalizeRecipientID(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.dir.FindByID(id)
	if !ok {
		s.current = nil
		s.view.ClearRecipientDetail()
		return domain.Recipient{}, false
	}

	s.current = &r
	s.view.RenderRecipientDetail(domain.NewRecipientDetail(r))
	return r, true
}

// Clear unsets the selection and its rendered detail.
func (s *RecipientSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.view.ClearRecipientDetail()
}

func (s *RecipientSelection) Current() (domain.Recipient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.Recipient{}, false
	}
	return *s.current, true
}
