package workflow

import "payment-portal/internal/core/domain"

// Container names used with View placeholder methods.
const (
	RecentRecipientsContainer = "recent-recipients"
	GalleryContainer          = "qr-gallery"
)

// View is the presentation layer the workflow renders into. Implementations
// must be safe for use from timer goroutines and must not call back into the
// workflow.
type View interface {
	RenderRecentRecipients(recipients []domain.Recipient)
	ShowEmptyState(container, icon, message string)

	RenderRecipientDetail(detail domain.RecipientDetail)
	ClearRecipientDetail()

	RenderForm(form domain.TransferForm)
	ResetForm()

	ShowMessage(msg domain.TransientMessage)
	HideMessage(token uint64)

	AppendQRImage(container string, img domain.QRImage)
}
