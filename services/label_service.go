package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils/label"

	"gorm.io/gorm"
)

// BlobStore adalah potongan kecil dari storage yang dibutuhkan generator
// label; production memakai S3, test memakai fake in-memory.
type BlobStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// BlobStoreFunc mengadaptasi fungsi paket storage menjadi BlobStore.
type BlobStoreFunc func(ctx context.Context, key string, data []byte, contentType string) (string, error)

func (f BlobStoreFunc) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return f(ctx, key, data, contentType)
}

// LabelService menghasilkan label QR/barcode untuk dokumen bernomor.
// Idempoten: keberadaan object key di kolom gambar adalah sinyal selesai,
// save berikutnya tidak menghasilkan ulang. Kegagalan generate/upload
// dicatat di log tanpa menggagalkan save pemicunya; kolom dibiarkan kosong
// untuk dicoba lagi nanti.
type LabelService struct {
	db        *gorm.DB
	store     BlobStore
	verifyURL func(code string) string
}

func NewLabelService(db *gorm.DB, store BlobStore, verifyURL func(string) string) *LabelService {
	return &LabelService{db: db, store: store, verifyURL: verifyURL}
}

// EnsureIncomingLabels membuat QR (URL verifikasi publik) dan barcode
// (nomor agenda) untuk surat masuk yang sudah bernomor.
func (s *LabelService) EnsureIncomingLabels(ctx context.Context, letter *models.IncomingLetter) {
	if letter.AgendaNumber == "" {
		return
	}
	if letter.QRImage != "" && letter.BarcodeImage != "" {
		return
	}

	updates := map[string]any{}

	if letter.QRImage == "" {
		key, err := s.uploadPNG(ctx, fmt.Sprintf("incoming/qrcodes/qr_in_%d.png", letter.ID), func() ([]byte, error) {
			return label.QRPNG(s.verifyURL(letter.AgendaNumber))
		})
		if err != nil {
			log.Printf("gagal generate QR surat masuk id=%d: %v", letter.ID, err)
		} else {
			letter.QRImage = key
			updates["qr_image"] = key
		}
	}

	if letter.BarcodeImage == "" {
		key, err := s.uploadPNG(ctx, fmt.Sprintf("incoming/barcodes/bc_in_%d.png", letter.ID), func() ([]byte, error) {
			return label.Code128PNG(letter.AgendaNumber)
		})
		if err != nil {
			log.Printf("gagal generate barcode surat masuk id=%d: %v", letter.ID, err)
		} else {
			letter.BarcodeImage = key
			updates["barcode_image"] = key
		}
	}

	if len(updates) == 0 {
		return
	}
	if err := s.db.Model(&models.IncomingLetter{}).Where("id = ?", letter.ID).Updates(updates).Error; err != nil {
		log.Printf("gagal simpan label surat masuk id=%d: %v", letter.ID, err)
	}
}

// EnsureOutgoingQR membuat QR verifikasi untuk surat keluar yang sudah
// bernomor (FINAL ke atas).
func (s *LabelService) EnsureOutgoingQR(ctx context.Context, letter *models.OutgoingLetter) {
	if !letter.HasNumber() || letter.QRImage != "" {
		return
	}

	key, err := s.uploadPNG(ctx, fmt.Sprintf("outgoing/qrcodes/qr_out_%d.png", letter.ID), func() ([]byte, error) {
		return label.QRPNG(s.verifyURL(letter.NumberValue()))
	})
	if err != nil {
		log.Printf("gagal generate QR surat keluar id=%d: %v", letter.ID, err)
		return
	}

	letter.QRImage = key
	if err := s.db.Model(&models.OutgoingLetter{}).Where("id = ?", letter.ID).
		Update("qr_image", key).Error; err != nil {
		log.Printf("gagal simpan QR surat keluar id=%d: %v", letter.ID, err)
	}
}

func (s *LabelService) uploadPNG(ctx context.Context, key string, gen func() ([]byte, error)) (string, error) {
	data, err := gen()
	if err != nil {
		return "", err
	}
	return s.store.UploadBytes(ctx, key, data, "image/png")
}
