package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-portal/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const qrColumns = `id, user_id, image_data, filename, mime_type, uploaded_at`

// QRCodeRepo implements ports.QRCodeRepository over user_qr_codes.
type QRCodeRepo struct {
	pool Pool
}

func NewQRCodeRepo(pool Pool) *QRCodeRepo {
	return &QRCodeRepo{pool: pool}
}

// Create stores qr and fills in its generated id.
func (r *QRCodeRepo) Create(ctx context.Context, qr *domain.QRCode) error {
	query := `INSERT INTO user_qr_codes (user_id, image_data, filename, mime_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.pool.QueryRow(ctx, query, qr.UserID, qr.ImageData, qr.Filename, qr.MimeType, qr.UploadedAt).Scan(&qr.ID)
	if err != nil {
		return fmt.Errorf("insert qr code: %w", err)
	}
	return nil
}

func (r *QRCodeRepo) GetLatest(ctx context.Context, userID int64) (*domain.QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM user_qr_codes
		WHERE user_id = $1 ORDER BY uploaded_at DESC, id DESC LIMIT 1`

	qr, err := scanQRCode(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest qr code: %w", err)
	}
	return qr, nil
}

func (r *QRCodeRepo) ListByUser(ctx context.Context, userID int64) ([]domain.QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM user_qr_codes
		WHERE user_id = $1 ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list qr codes: %w", err)
	}
	defer rows.Close()

	var codes []domain.QRCode
	for rows.Next() {
		qr, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan qr code: %w", err)
		}
		codes = append(codes, *qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qr codes: %w", err)
	}
	return codes, nil
}

func scanQRCode(row pgx.Row) (*domain.QRCode, error) {
	qr := &domain.QRCode{}
	if err := row.Scan(&qr.ID, &qr.UserID, &qr.ImageData, &qr.Filename, &qr.MimeType, &qr.UploadedAt); err != nil {
		return nil, err
	}
	return qr, nil
}
