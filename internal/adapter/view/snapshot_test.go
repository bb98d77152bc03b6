package view

import (
	"sync"
	"testing"
	"time"

	"payment-portal/internal/core/domain"
	"payment-portal/internal/workflow"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_StateIsACopy(t *testing.T) {
	s := NewSnapshot()
	s.RenderRecentRecipients(workflow.DefaultRecipients()[:2])
	s.RenderRecipientDetail(domain.NewRecipientDetail(workflow.DefaultRecipients()[0]))
	s.ShowMessage(domain.TransientMessage{Token: 1, Kind: domain.MessageKindError, Text: "x"})

	st := s.State()
	st.Recent[0].Name = "changed"
	st.Detail.Initials = "ZZ"
	st.Message.Text = "changed"

	again := s.State()
	assert.Equal(t, "Alice Smith", again.Recent[0].Name)
	assert.Equal(t, "AS", again.Detail.Initials)
	assert.Equal(t, "x", again.Message.Text)
}

func TestSnapshot_EmptyCollectionsAreNonNil(t *testing.T) {
	st := NewSnapshot().State()
	assert.NotNil(t, st.Recent)
	assert.NotNil(t, st.Gallery)
	assert.Nil(t, st.Detail)
	assert.Nil(t, st.Message)
	assert.Nil(t, st.Placeholders)
}

func TestSnapshot_HideMessageChecksToken(t *testing.T) {
	s := NewSnapshot()
	s.ShowMessage(domain.TransientMessage{Token: 1, Text: "first"})
	s.ShowMessage(domain.TransientMessage{Token: 2, Text: "second"})

	s.HideMessage(1)
	require.NotNil(t, s.State().Message)
	assert.Equal(t, "second", s.State().Message.Text)

	s.HideMessage(2)
	assert.Nil(t, s.State().Message)
}

func TestSnapshot_Placeholders(t *testing.T) {
	s := NewSnapshot()
	s.ShowEmptyState(workflow.RecentRecipientsContainer, "fa-users", "No recent recipients")

	st := s.State()
	assert.Empty(t, st.Recent)
	assert.Equal(t, domain.Placeholder{Kind: "empty", Icon: "fa-users", Message: "No recent recipients"}, st.Placeholders[workflow.RecentRecipientsContainer])

	s.RenderRecentRecipients(workflow.DefaultRecipients()[:1])
	assert.NotContains(t, s.State().Placeholders, workflow.RecentRecipientsContainer)
}

func TestSnapshot_FormAndGallery(t *testing.T) {
	s := NewSnapshot()
	s.RenderForm(domain.TransferForm{RecipientID: "1", Amount: "10"})
	s.AppendQRImage(workflow.GalleryContainer, domain.QRImage{Src: "data:image/png;base64,aGk=", MimeType: "image/png"})
	s.AppendQRImage(workflow.GalleryContainer, domain.QRImage{Src: "data:image/gif;base64,aGk=", MimeType: "image/gif"})

	st := s.State()
	assert.Equal(t, "10", st.Form.Amount)
	assert.Len(t, st.Gallery, 2)

	s.ResetForm()
	assert.True(t, s.State().Form.IsZero())
}

type manualTimer struct{ f func() }

func (t *manualTimer) Stop() bool {
	t.f = nil
	return true
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (m *manualScheduler) AfterFunc(_ time.Duration, f func()) workflow.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{f: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	timers := m.timers
	m.mu.Unlock()
	for _, t := range timers {
		if t.f != nil {
			t.f()
		}
	}
}

// Drives a real page into the snapshot to make sure the state it serves
// follows a full submit cycle.
func TestSnapshot_WithPage(t *testing.T) {
	dir, err := workflow.NewStaticDirectory(workflow.DefaultRecipients())
	require.NoError(t, err)

	s := NewSnapshot()
	sched := &manualScheduler{}
	page := workflow.NewPage(domain.Session{UserID: 1, Username: "alice"}, workflow.PageDeps{
		Directory: dir,
		View:      s,
		Scheduler: sched,
		Log:       zerolog.Nop(),
	})
	defer page.Close()

	page.Open()
	page.SelectRecipient("3")
	require.NotNil(t, s.State().Detail)

	_, err = page.Submit(t.Context(), domain.TransferForm{Amount: "42"})
	require.NoError(t, err)

	st := s.State()
	assert.Nil(t, st.Detail)
	assert.True(t, st.Form.IsZero())
	require.NotNil(t, st.Message)
	assert.Equal(t, "Successfully transferred $42.00 to Carol Williams", st.Message.Text)

	sched.fireAll()
	assert.Nil(t, s.State().Message)
}
