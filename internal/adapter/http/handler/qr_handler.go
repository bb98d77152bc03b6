package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"payment-portal/internal/adapter/http/dto"
	"payment-portal/internal/core/ports"
	"payment-portal/pkg/apperror"
	"payment-portal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	formFieldImage  = "qr_image"
	formFieldUserID = "user_id"
)

// QRHandler handles QR code upload and retrieval.
type QRHandler struct {
	qrSvc ports.QRCodeService
}

func NewQRHandler(qrSvc ports.QRCodeService) *QRHandler {
	return &QRHandler{qrSvc: qrSvc}
}

// Upload handles POST /api/upload-qr (multipart: qr_image, user_id).
func (h *QRHandler) Upload(c *gin.Context) {
	file, err := c.FormFile(formFieldImage)
	if err != nil {
		response.Error(c, uploadError(err))
		return
	}

	userID, err := parseUserID(c.PostForm(formFieldUserID))
	if err != nil {
		response.Error(c, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, apperror.InternalError(fmt.Errorf("opening upload: %w", err)))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, uploadError(err))
		return
	}

	qr, err := h.qrSvc.Upload(c.Request.Context(), ports.UploadQRRequest{
		UserID:    userID,
		Filename:  file.Filename,
		MimeType:  file.Header.Get("Content-Type"),
		ImageData: data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewQRUploadResponse(qr))
}

// Latest handles GET /api/user-qr/:user_id with the raw image bytes.
func (h *QRHandler) Latest(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	qr, err := h.qrSvc.Latest(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, qr.MimeType, qr.ImageData)
}

// List handles GET /api/qr-codes/:user_id. The body is a bare JSON array,
// newest first, which is what the portal gallery consumes.
func (h *QRHandler) List(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.qrSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return apperror.ErrNoFileUploaded()
	case errors.As(err, &tooLarge):
		return apperror.ErrPayloadTooLarge()
	default:
		return apperror.Validation("Invalid multipart form")
	}
}
