package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"payment-portal/internal/core/domain"

	"github.com/rs/zerolog"
)

// maxListingBytes caps the QR listing body.
const maxListingBytes = 32 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GalleryConfig locates the QR listing endpoint.
type GalleryConfig struct {
	BaseURL string
	Client  HTTPClient
	Timeout time.Duration
}

// QRGalleryLoader fetches a user's QR codes and renders one image per record.
type QRGalleryLoader struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
	view    View
	log     zerolog.Logger
}

func NewQRGalleryLoader(cfg GalleryConfig, view View, log zerolog.Logger) *QRGalleryLoader {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &QRGalleryLoader{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		timeout: cfg.Timeout,
		view:    view,
		log:     log,
	}
}

// Fetch issues GET {base}/api/qr-codes/{userID} and decodes the whole JSON
// array before returning, so a malformed payload yields an error and no
// records. The returned sequence can be ranged over only once.
func (l *QRGalleryLoader) Fetch(ctx context.Context, userID int64) (iter.Seq[domain.QRCodeRecord], error) {
	url := l.baseURL + "/api/qr-codes/" + strconv.FormatInt(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building qr listing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching qr listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetching qr listing: unexpected status %d", resp.StatusCode)
	}

	var records []domain.QRCodeRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxListingBytes)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding qr listing: %w", err)
	}
	return oneShot(records), nil
}

// Load starts a fire-and-forget load for userID. Failures are logged and
// leave the gallery empty; nothing is returned to the caller except a channel
// closed when the load has finished.
func (l *QRGalleryLoader) Load(ctx context.Context, userID int64) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.load(ctx, userID)
	}()
	return done
}

func (l *QRGalleryLoader) load(ctx context.Context, userID int64) (rendered int) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Int64("user_id", userID).Msg("qr gallery render panicked")
		}
	}()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	records, err := l.Fetch(ctx, userID)
	if err != nil {
		l.log.Error().Err(err).Int64("user_id", userID).Msg("loading qr codes failed")
		return 0
	}

	for rec := range records {
		if ctx.Err() != nil {
			return rendered
		}
		l.view.AppendQRImage(GalleryContainer, domain.QRImage{Src: rec.DataURI(), MimeType: rec.MimeType})
		rendered++
	}

	l.log.Debug().Int64("user_id", userID).Int("count", rendered).Msg("qr gallery loaded")
	return rendered
}

func oneShot(records []domain.QRCodeRecord) iter.Seq[domain.QRCodeRecord] {
	var used atomic.Bool
	return func(yield func(domain.QRCodeRecord) bool) {
		if used.Swap(true) {
			return
		}
		for _, r := range records {
			if !yield(r) {
				return
			}
		}
	}
}
