package models

import (
	"time"

	"gorm.io/gorm"
)

// Disposition adalah instruksi routing internal atas sebuah surat masuk.
// Immutable setelah dibuat; re-routing dilakukan lewat disposisi anak
// (ParentID membentuk pohon dengan ID stabil, bukan back-reference).
type Disposition struct {
	gorm.Model
	IncomingLetterID uint            `gorm:"not null;index"`
	IncomingLetter   *IncomingLetter `gorm:"foreignKey:IncomingLetterID"`

	SenderID *uint `gorm:"index"`
	Sender   *User `gorm:"foreignKey:SenderID"`

	Note    string     `gorm:"type:text"`
	DueDate *time.Time `gorm:"type:date"`

	// AllowParallel=false hanya metadata advisory: sistem tidak memaksa
	// urutan pengerjaan antar assignee.
	AllowParallel bool `gorm:"default:true"`

	ParentID *uint         `gorm:"index"`
	Children []Disposition `gorm:"foreignKey:ParentID"`

	Assignments []DispositionAssignment `gorm:"constraint:OnDelete:CASCADE"`
}

func (Disposition) TableName() string {
	return "dispositions"
}

// DispositionAssignment adalah tugas satu staf di bawah sebuah disposisi.
// CompletedAt tidak pernah terisi sebelum ReadAt: tandai-selesai mengisi
// ReadAt lebih dulu bila masih kosong.
type DispositionAssignment struct {
	gorm.Model
	DispositionID uint         `gorm:"not null;uniqueIndex:idx_dispo_assignee;index"`
	Disposition   *Disposition `gorm:"foreignKey:DispositionID"`

	AssigneeID uint  `gorm:"not null;uniqueIndex:idx_dispo_assignee;index"`
	Assignee   *User `gorm:"foreignKey:AssigneeID"`

	ReadAt      *time.Time
	CompletedAt *time.Time
}

func (DispositionAssignment) TableName() string {
	return "disposition_assignments"
}

func (a *DispositionAssignment) IsRead() bool     { return a.ReadAt != nil }
func (a *DispositionAssignment) IsComplete() bool { return a.CompletedAt != nil }
