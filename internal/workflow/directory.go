package workflow

import (
	"fmt"

	"payment-portal/internal/core/domain"
)

// RecipientDirectory is the read-only set of known recipients.
type RecipientDirectory interface {
	FindByID(id domain.RecipientID) (domain.Recipient, bool)
	// ListAll returns recipients in insertion order.
	ListAll() []domain.Recipient
	// ListRecent returns recipients flagged IsRecent, in directory order.
	// An empty result is a normal state.
	ListRecent() []domain.Recipient
}

// StaticDirectory is an immutable in-memory RecipientDirectory.
type StaticDirectory struct {
	ordered []domain.Recipient
	byID    map[domain.RecipientID]int
}

// NewStaticDirectory normalises every ID and rejects empty or duplicate ones.
func NewStaticDirectory(recipients []domain.Recipient) (*StaticDirectory, error) {
	d := &StaticDirectory{
		ordered: make([]domain.Recipient, 0, len(recipients)),
		byID:    make(map[domain.RecipientID]int, len(recipients)),
	}
	for i, r := range recipients {
		r.ID = domain.NormalizeRecipientID(string(r.ID))
		if r.ID.Empty() {
			return nil, fmt.Errorf("recipient %d (%q): empty id", i, r.Name)
		}
		if _, dup := d.byID[r.ID]; dup {
			return nil, fmt.Errorf("recipient %d (%q): duplicate id %q", i, r.Name, r.ID)
		}
		d.byID[r.ID] = len(d.ordered)
		d.ordered = append(d.ordered, r)
	}
	return d, nil
}

// FindByID looks up a recipient. id must already be normalised.
func (d *StaticDirectory) FindByID(id domain.RecipientID) (domain.Recipient, bool) {
	i, ok := d.byID[id]
	if !ok {
		return domain.Recipient{}, false
	}
	return d.ordered[i], true
}

func (d *StaticDirectory) ListAll() []domain.Recipient {
	out := make([]domain.Recipient, len(d.ordered))
	copy(out, d.ordered)
	return out
}

func (d *StaticDirectory) ListRecent() []domain.Recipient {
	var out []domain.Recipient
	for _, r := range d.ordered {
		if r.IsRecent {
			out = append(out, r)
		}
	}
	return out
}

// DefaultRecipients is the seed directory used when none is configured.
func DefaultRecipients() []domain.Recipient {
	return []domain.Recipient{
		{ID: "1", Name: "Alice Smith", AccountNumber: "4587******9012", Bank: "Chase Bank", IsRecent: true},
		{ID: "2", Name: "Bob Johnson", AccountNumber: "3256******7891", Bank: "Bank of America", IsRecent: true},
		{ID: "3", Name: "Carol Williams", AccountNumber: "7812******3456", Bank: "Wells Fargo", IsRecent: true},
		{ID: "4", Name: "David Brown", AccountNumber: "9145******6789", Bank: "Citibank"},
		{ID: "5", Name: "Emma Davis", AccountNumber: "6234******1234", Bank: "TD Bank"},
	}
}
