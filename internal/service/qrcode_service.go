package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports"
	"payment-portal/pkg/apperror"

	"github.com/rs/zerolog"
)

const defaultQRMimeType = "application/octet-stream"

// QRCodeServiceImpl implements ports.QRCodeService. The listing is cached in
// Redis; cache failures are logged and never fail a request.
type QRCodeServiceImpl struct {
	repo     ports.QRCodeRepository
	cache    ports.QRListingCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewQRCodeService(repo ports.QRCodeRepository, cache ports.QRListingCache, cacheTTL time.Duration, log zerolog.Logger) *QRCodeServiceImpl {
	return &QRCodeServiceImpl{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}
}

func (s *QRCodeServiceImpl) Upload(ctx context.Context, req ports.UploadQRRequest) (*domain.QRCode, error) {
	if req.Filename == "" {
		return nil, apperror.ErrEmptyFilename()
	}
	if len(req.ImageData) == 0 {
		return nil, apperror.ErrNoFileUploaded()
	}
	if req.UserID <= 0 {
		return nil, apperror.Validation("user_id is required")
	}

	filename := SanitizeFilename(req.Filename)
	if filename == "" {
		return nil, apperror.ErrEmptyFilename()
	}
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = defaultQRMimeType
	}

	qr := &domain.QRCode{
		UserID:     req.UserID,
		ImageData:  req.ImageData,
		Filename:   filename,
		MimeType:   mimeType,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, qr); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store qr code: %w", err))
	}

	if err := s.cache.Invalidate(ctx, req.UserID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", req.UserID).Msg("failed to invalidate qr listing cache")
	}

	s.log.Info().
		Int64("user_id", req.UserID).
		Str("filename", filename).
		Int("bytes", len(req.ImageData)).
		Msg("qr code uploaded")
	return qr, nil
}

// Latest returns the most recently uploaded QR code of the user.
func (s *QRCodeServiceImpl) Latest(ctx context.Context, userID int64) (*domain.QRCode, error) {
	qr, err := s.repo.GetLatest(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get latest qr code: %w", err))
	}
	if qr == nil {
		return nil, apperror.ErrQRCodeNotFound()
	}
	return qr, nil
}

// List returns the user's QR codes newest first, never nil.
func (s *QRCodeServiceImpl) List(ctx context.Context, userID int64) ([]domain.QRCodeRecord, error) {
	cached, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("qr listing cache read failed, falling through to DB")
	}
	if cached != nil {
		var records []domain.QRCodeRecord
		if err := json.Unmarshal(cached, &records); err == nil {
			return records, nil
		}
		s.log.Warn().Int64("user_id", userID).Msg("discarding undecodable qr listing cache entry")
	}

	codes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list qr codes: %w", err))
	}

	records := make([]domain.QRCodeRecord, 0, len(codes))
	for _, qr := range codes {
		records = append(records, qr.Record())
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal qr listing: %w", err))
	}
	if err := s.cache.Set(ctx, userID, payload, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to cache qr listing")
	}

	return records, nil
}

// SanitizeFilename reduces a client-supplied name to a safe base name made of
// ASCII letters, digits, '.', '-' and '_'. Other runs collapse to '_'.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		return ""
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "._")
}
