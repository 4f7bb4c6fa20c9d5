package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority string
type IncomingStatus string
type ReceivedVia string

const (
	PriorityBiasa        Priority = "B"  // Normal
	PrioritySegera       Priority = "S"  // Urgent
	PrioritySangatSegera Priority = "SS" // Very Urgent
)

const (
	IncomingDraft      IncomingStatus = "DRAFT"
	IncomingRegistered IncomingStatus = "REG"
	IncomingDisposed   IncomingStatus = "DISP"
	IncomingInProgress IncomingStatus = "PROG"
	IncomingDone       IncomingStatus = "DONE"
	IncomingArchived   IncomingStatus = "ARCH"
)

const (
	ViaFisik ReceivedVia = "fisik"
	ViaEmail ReceivedVia = "email"
)

// IncomingLetter adalah surat masuk. NomorAgenda diisi sekali di dalam
// transaksi pembuatan (lihat services.IncomingService) dan tidak pernah
// berubah setelahnya.
type IncomingLetter struct {
	gorm.Model
	ReceivedVia  ReceivedVia `gorm:"type:varchar(10);default:'fisik'"`
	Origin       string      `gorm:"type:varchar(255);not null"`
	OriginNumber string      `gorm:"type:varchar(100)"`
	OriginDate   *time.Time  `gorm:"type:date"`
	Subject      string      `gorm:"type:varchar(300);not null;index"`
	Priority     Priority    `gorm:"type:varchar(2);default:'B';not null;index"`

	ScanPDF string `gorm:"type:varchar(255)"` // object key hasil scan (PDF)

	AgendaNumber string `gorm:"type:varchar(30);uniqueIndex"`
	BarcodeImage string `gorm:"type:varchar(255)"` // object key label barcode
	QRImage      string `gorm:"type:varchar(255)"` // object key label QR

	Status IncomingStatus `gorm:"type:varchar(5);default:'REG';not null;index"`

	ClassificationTags []ClassificationTag `gorm:"many2many:incoming_letter_tags;"`
	Attachments        []Attachment        `gorm:"many2many:incoming_letter_attachments;"`

	CurrentHandlerID *uint `gorm:"index"`
	CurrentHandler   *User `gorm:"foreignKey:CurrentHandlerID"`
	CreatedByID      *uint `gorm:"index"`
	CreatedBy        *User `gorm:"foreignKey:CreatedByID"`

	// Retensi arsip
	RetentionClass string     `gorm:"type:varchar(50)"`
	RetentionUntil *time.Time `gorm:"type:date"`
	DisposedAt     *time.Time `gorm:"type:date"`

	Dispositions []Disposition `gorm:"constraint:OnDelete:CASCADE"`
	FollowUps    []FollowUp    `gorm:"constraint:OnDelete:CASCADE"`
}

func (IncomingLetter) TableName() string {
	return "incoming_letters"
}

func (l *IncomingLetter) IsArchived() bool { return l.Status == IncomingArchived }

// HasTag mengecek tag klasifikasi; ClassificationTags harus sudah di-preload.
func (l *IncomingLetter) HasTag(name string) bool {
	for _, t := range l.ClassificationTags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// incomingRank dipakai untuk menolak transisi mundur otomatis.
var incomingRank = map[IncomingStatus]int{
	IncomingDraft:      0,
	IncomingRegistered: 1,
	IncomingDisposed:   2,
	IncomingInProgress: 3,
	IncomingDone:       4,
	IncomingArchived:   5,
}

func (s IncomingStatus) Rank() int { return incomingRank[s] }

func (s IncomingStatus) IsValid() bool {
	_, ok := incomingRank[s]
	return ok
}

var incomingStatusLabels = map[IncomingStatus]string{
	IncomingDraft:      "Draft",
	IncomingRegistered: "Rejistu",
	IncomingDisposed:   "Disposisi",
	IncomingInProgress: "Iha Prosesu",
	IncomingDone:       "Remata",
	IncomingArchived:   "Arkivu",
}

func (s IncomingStatus) Label() string {
	if l, ok := incomingStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

var priorityLabels = map[Priority]string{
	PriorityBiasa:        "Normal",
	PrioritySegera:       "Urgente",
	PrioritySangatSegera: "Muito Urgente",
}

func (p Priority) Label() string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return string(p)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityBiasa, PrioritySegera, PrioritySangatSegera:
		return true
	default:
		return false
	}
}
