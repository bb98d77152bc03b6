package workflow

import (
	"sync"
	"time"

	"payment-portal/internal/core/domain"
)

// MessageSlot is the single "currently displayed message" of a page. It is a
// last-writer-wins register: every Show bumps the token and stops the previous
// expiry timer, and an expiry whose token no longer matches is a no-op.
type MessageSlot struct {
	mu      sync.Mutex
	view    View
	sched   Scheduler
	now     func() time.Time
	token   uint64
	current *domain.TransientMessage
	timer   Timer
	closed  bool
}

func NewMessageSlot(view View, sched Scheduler) *MessageSlot {
	if sched == nil {
		sched = SystemScheduler
	}
	return &MessageSlot{view: view, sched: sched, now: time.Now}
}

// Show replaces whatever is displayed and schedules its expiry after ttl.
// After Close it returns the zero message and renders nothing.
func (s *MessageSlot) Show(kind domain.MessageKind, text string, ttl time.Duration) domain.TransientMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.TransientMessage{}
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	s.token++
	msg := domain.TransientMessage{
		Token:        s.token,
		Kind:         kind,
		Text:         text,
		ExpiresAfter: ttl,
		ShownAt:      s.now(),
	}
	s.current = &msg
	s.view.ShowMessage(msg)

	token := s.token
	s.timer = s.sched.AfterFunc(ttl, func() { s.expire(token) })
	return msg
}

// Current returns the displayed message, if any.
func (s *MessageSlot) Current() (domain.TransientMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.TransientMessage{}, false
	}
	return *s.current, true
}

// Close stops the pending expiry and refuses further messages. The view is
// left untouched since it is being discarded.
func (s *MessageSlot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *MessageSlot) expire(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.current == nil || s.current.Token != token {
		return
	}
	s.current = nil
	s.timer = nil
	s.view.HideMessage(token)
}
