package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// TargetKind membedakan surat masuk dan surat keluar pada record yang bisa
// menempel ke keduanya. Tagged union eksplisit, bukan referensi polimorfik
// tanpa tipe: tepat satu foreign key yang terisi, sesuai TargetKind.
type TargetKind string

const (
	TargetIncoming TargetKind = "incoming"
	TargetOutgoing TargetKind = "outgoing"
)

type ExpeditionMethod string

const (
	ExpeditionEmail ExpeditionMethod = "email"
	ExpeditionFisik ExpeditionMethod = "fisik"
)

var ErrTargetMismatch = errors.New("target kind tidak cocok dengan foreign key yang terisi")

// ExpeditionRecord mencatat pengiriman fisik/elektronik sebuah surat.
type ExpeditionRecord struct {
	gorm.Model
	TargetKind       TargetKind `gorm:"type:varchar(10);not null;index"`
	IncomingLetterID *uint      `gorm:"index"`
	OutgoingLetterID *uint      `gorm:"index"`

	Method      ExpeditionMethod `gorm:"type:varchar(10);default:'email';not null"`
	Destination string           `gorm:"type:varchar(255);not null"`
	SentAt      time.Time        `gorm:"autoCreateTime"`
	ReceivedBy  string           `gorm:"type:varchar(255)"`
	ReceivedAt  *time.Time
	ProofFile   string `gorm:"type:varchar(255)"`
}

func (ExpeditionRecord) TableName() string {
	return "expedition_records"
}

func (r *ExpeditionRecord) BeforeSave(tx *gorm.DB) error {
	return validateTarget(r.TargetKind, r.IncomingLetterID, r.OutgoingLetterID)
}

// DestructionRecord mendokumentasikan pemusnahan fisik dokumen terarsip.
// Surat tidak pernah di-hard-delete pada alur normal; record ini yang
// menjadi bukti pemusnahan.
type DestructionRecord struct {
	gorm.Model
	TargetKind       TargetKind `gorm:"type:varchar(10);not null;index"`
	IncomingLetterID *uint      `gorm:"index"`
	OutgoingLetterID *uint      `gorm:"index"`

	Reason       string     `gorm:"type:varchar(255)"`
	ApprovedByID *uint      `gorm:"index"`
	ApprovedBy   *User      `gorm:"foreignKey:ApprovedByID"`
	DestroyedAt  *time.Time `gorm:"type:date"`
	Document     string     `gorm:"type:varchar(255)"` // berita acara (PDF)
}

func (DestructionRecord) TableName() string {
	return "destruction_records"
}

func (r *DestructionRecord) BeforeSave(tx *gorm.DB) error {
	return validateTarget(r.TargetKind, r.IncomingLetterID, r.OutgoingLetterID)
}

func validateTarget(kind TargetKind, inID, outID *uint) error {
	switch kind {
	case TargetIncoming:
		if inID == nil || outID != nil {
			return ErrTargetMismatch
		}
	case TargetOutgoing:
		if outID == nil || inID != nil {
			return ErrTargetMismatch
		}
	default:
		return ErrTargetMismatch
	}
	return nil
}
