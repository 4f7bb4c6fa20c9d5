package models

import (
	"time"

	"gorm.io/gorm"
)

type OutgoingStatus string
type DocKind string

const (
	OutgoingDraft    OutgoingStatus = "DRAFT"
	OutgoingReview   OutgoingStatus = "REVIEW"
	OutgoingApproved OutgoingStatus = "APPROVED"
	OutgoingFinal    OutgoingStatus = "FINAL"
	OutgoingSent     OutgoingStatus = "SENT"
	OutgoingArchived OutgoingStatus = "ARCH"
)

const (
	DocNota    DocKind = "ND" // Nota Servisu
	DocKonvite DocKind = "UD" // Konvite
	DocKarta   DocKind = "ST" // Karta Servisu
	DocMemo    DocKind = "MM" // Memo
	DocSeluk   DocKind = "LN" // Lain-lain
)

// OutgoingLetter adalah surat keluar. Number NULL selama draft/review
// (banyak draft boleh hidup berdampingan tanpa menabrak unique index) dan
// baru diisi (permanen) saat transisi ke FINAL.
type OutgoingLetter struct {
	gorm.Model
	TemplateType DocKind `gorm:"type:varchar(2);default:'ND';not null"`
	Subject      string  `gorm:"type:varchar(300);not null;index"`
	Body         string  `gorm:"type:longtext"`

	Number *string        `gorm:"type:varchar(40);uniqueIndex"`
	Status OutgoingStatus `gorm:"type:varchar(10);default:'DRAFT';not null;index"`

	Attachments []Attachment `gorm:"many2many:outgoing_letter_attachments;"`

	CreatedByID *uint `gorm:"index"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID"`

	SignedPDF string `gorm:"type:varchar(255)"` // object key PDF bertanda tangan
	QRImage   string `gorm:"type:varchar(255)"` // object key label QR

	RetentionClass string     `gorm:"type:varchar(50)"`
	RetentionUntil *time.Time `gorm:"type:date"`

	Reviews []ReviewStep `gorm:"constraint:OnDelete:CASCADE"`
}

func (OutgoingLetter) TableName() string {
	return "outgoing_letters"
}

// NumberValue mengembalikan nomor surat, atau string kosong bila belum
// terbit.
func (l *OutgoingLetter) NumberValue() string {
	if l.Number == nil {
		return ""
	}
	return *l.Number
}

func (l *OutgoingLetter) HasNumber() bool { return l.Number != nil && *l.Number != "" }

// NumberRequired: nomor wajib terisi tepat pada status FINAL ke atas.
func (s OutgoingStatus) NumberRequired() bool {
	switch s {
	case OutgoingFinal, OutgoingSent, OutgoingArchived:
		return true
	default:
		return false
	}
}

var outgoingRank = map[OutgoingStatus]int{
	OutgoingDraft:    0,
	OutgoingReview:   1,
	OutgoingApproved: 2,
	OutgoingFinal:    3,
	OutgoingSent:     4,
	OutgoingArchived: 5,
}

func (s OutgoingStatus) Rank() int { return outgoingRank[s] }

func (s OutgoingStatus) IsValid() bool {
	_, ok := outgoingRank[s]
	return ok
}

var outgoingStatusLabels = map[OutgoingStatus]string{
	OutgoingDraft:    "Draft",
	OutgoingReview:   "Revisaun",
	OutgoingApproved: "Aprovadu",
	OutgoingFinal:    "Final",
	OutgoingSent:     "Manda Ona",
	OutgoingArchived: "Arkivu",
}

func (s OutgoingStatus) Label() string {
	if l, ok := outgoingStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

var docKindLabels = map[DocKind]string{
	DocNota:    "Nota Servisu",
	DocKonvite: "Konvite",
	DocKarta:   "Karta Servisu",
	DocMemo:    "Memo",
	DocSeluk:   "Seluk",
}

func (k DocKind) Label() string {
	if l, ok := docKindLabels[k]; ok {
		return l
	}
	return string(k)
}

func (k DocKind) IsValid() bool {
	_, ok := docKindLabels[k]
	return ok
}

// DocKinds mengembalikan daftar prefix nomor surat keluar yang dikenal.
func DocKinds() []DocKind {
	return []DocKind{DocNota, DocKonvite, DocKarta, DocMemo, DocSeluk}
}

// ReviewStep adalah satu titik paraf dalam rantai review surat keluar.
// Urutan unik per surat; ApprovedAt nil sampai reviewer menyetujui.
type ReviewStep struct {
	gorm.Model
	OutgoingLetterID uint `gorm:"not null;uniqueIndex:idx_review_letter_order;index"`
	StepOrder        uint `gorm:"not null;uniqueIndex:idx_review_letter_order"`

	ReviewerID uint  `gorm:"not null;index"`
	Reviewer   *User `gorm:"foreignKey:ReviewerID"`

	ApprovedAt *time.Time
	Note       string `gorm:"type:varchar(300)"`
}

func (ReviewStep) TableName() string {
	return "review_steps"
}

func (r *ReviewStep) IsApproved() bool { return r.ApprovedAt != nil }
