package domain

// RecipientDetail is what the detail panel shows for the selected recipient.
type RecipientDetail struct {
	Recipient Recipient `json:"recipient"`
	Initials  string    `json:"initials"`
}

// NewRecipientDetail derives the detail panel content for r.
func NewRecipientDetail(r Recipient) RecipientDetail {
	return RecipientDetail{Recipient: r, Initials: r.Initials()}
}

// QRImage is one rendered gallery entry.
type QRImage struct {
	Src      string `json:"src"`
	MimeType string `json:"mime_type"`
}

// Placeholder is the generic loading / error / empty rendering of a container.
type Placeholder struct {
	Kind    string `json:"kind"` // loading, error, empty
	Icon    string `json:"icon,omitempty"`
	Message string `json:"message,omitempty"`
}

// PageState is a point-in-time copy of everything the transfer page displays.
type PageState struct {
	PageID       string                 `json:"page_id"`
	DisplayName  string                 `json:"display_name"`
	Phase        string                 `json:"phase"`
	Recent       []Recipient            `json:"recent"`
	Detail       *RecipientDetail       `json:"detail,omitempty"`
	Form         TransferForm           `json:"form"`
	Message      *TransientMessage      `json:"message,omitempty"`
	Gallery      []QRImage              `json:"gallery"`
	Placeholders map[string]Placeholder `json:"placeholders,omitempty"`
}
