package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"

	"gorm.io/gorm"
)

// VerificationResult adalah proyeksi minimum untuk halaman verifikasi
// publik: tanpa isi surat, lampiran, maupun identitas penanggung jawab.
type VerificationResult struct {
	Kind      models.TargetKind `json:"kind"`
	Code      string            `json:"code"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`

	// Hanya surat masuk.
	Priority string `json:"priority,omitempty"`

	// Hanya surat keluar.
	Template     string `json:"template,omitempty"`
	HasSignedPDF bool   `json:"has_signed_pdf,omitempty"`
}

// VerifyService menyelesaikan kode verifikasi publik ke metadata minimum.
type VerifyService struct {
	db *gorm.DB
}

func NewVerifyService(db *gorm.DB) *VerifyService {
	return &VerifyService{db: db}
}

// Lookup mengklasifikasi kode dari prefix-nya: AGD/ → surat masuk via
// nomor agenda, prefix jenis dokumen yang dikenal → surat keluar via
// nomor surat. Prefix asing dan record yang tidak ada sama-sama jatuh ke
// ErrNotFound generik — caller tidak bisa dipakai untuk enumerasi.
func (s *VerifyService) Lookup(code string) (*VerificationResult, error) {
	code = strings.TrimSpace(code)

	if strings.HasPrefix(code, utils.AgendaPrefix+"/") {
		var letter models.IncomingLetter
		if err := s.db.Where("agenda_number = ?", code).First(&letter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &VerificationResult{
			Kind:      models.TargetIncoming,
			Code:      letter.AgendaNumber,
			Status:    letter.Status.Label(),
			CreatedAt: letter.CreatedAt,
			Priority:  letter.Priority.Label(),
		}, nil
	}

	if hasOutgoingPrefix(code) {
		var letter models.OutgoingLetter
		if err := s.db.Where("number = ?", code).First(&letter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &VerificationResult{
			Kind:         models.TargetOutgoing,
			Code:         letter.NumberValue(),
			Status:       letter.Status.Label(),
			CreatedAt:    letter.CreatedAt,
			Template:     letter.TemplateType.Label(),
			HasSignedPDF: letter.SignedPDF != "",
		}, nil
	}

	return nil, ErrNotFound
}

func hasOutgoingPrefix(code string) bool {
	for _, kind := range models.DocKinds() {
		if strings.HasPrefix(code, string(kind)+"/") {
			return true
		}
	}
	return false
}
