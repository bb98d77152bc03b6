package workflow

import (
	"sort"
	"sync"
	"time"

	"payment-portal/internal/core/domain"
)

// recordingView keeps everything the workflow rendered.
type recordingView struct {
	mu            sync.Mutex
	recent        []domain.Recipient
	empty         map[string]string
	detail        *domain.RecipientDetail
	detailRenders []domain.RecipientDetail
	form          domain.TransferForm
	resets        int
	message       *domain.TransientMessage
	shown         []domain.TransientMessage
	hidden        []uint64
	images        []domain.QRImage
}

func newRecordingView() *recordingView {
	return &recordingView{empty: map[string]string{}}
}

func (v *recordingView) RenderRecentRecipients(rs []domain.Recipient) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recent = rs
}

func (v *recordingView) ShowEmptyState(container, _, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.empty[container] = message
}

func (v *recordingView) RenderRecipientDetail(d domain.RecipientDetail) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detail = &d
	v.detailRenders = append(v.detailRenders, d)
}

func (v *recordingView) ClearRecipientDetail() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detail = nil
}

func (v *recordingView) RenderForm(f domain.TransferForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = f
}

func (v *recordingView) ResetForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = domain.TransferForm{}
	v.resets++
}

func (v *recordingView) ShowMessage(m domain.TransientMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = &m
	v.shown = append(v.shown, m)
}

func (v *recordingView) HideMessage(token uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hidden = append(v.hidden, token)
	if v.message != nil && v.message.Token == token {
		v.message = nil
	}
}

func (v *recordingView) AppendQRImage(_ string, img domain.QRImage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.images = append(v.images, img)
}

func (v *recordingView) currentMessage() *domain.TransientMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.message == nil {
		return nil
	}
	m := *v.message
	return &m
}

func (v *recordingView) currentDetail() *domain.RecipientDetail {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.detail == nil {
		return nil
	}
	d := *v.detail
	return &d
}

func (v *recordingView) currentForm() domain.TransferForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *recordingView) imageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.images)
}

// manualScheduler fires timers only when Advance moves its clock past them.
// With leaky set, Stop reports success but the timer still fires, which is
// what an unconditional hide-after-timeout would do.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
	leaky  bool
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	active := !t.stopped && !t.fired
	if !t.s.leaky {
		t.stopped = true
	}
	return active
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func mustDirectory(rs []domain.Recipient) *StaticDirectory {
	d, err := NewStaticDirectory(rs)
	if err != nil {
		panic(err)
	}
	return d
}
