package models

import "gorm.io/gorm"

// FollowUp adalah dokumen tindak lanjut (nota/balasan) atas surat masuk.
type FollowUp struct {
	gorm.Model
	IncomingLetterID uint            `gorm:"not null;index"`
	IncomingLetter   *IncomingLetter `gorm:"foreignKey:IncomingLetterID"`

	DocType  DocKind `gorm:"type:varchar(2);default:'ND';not null"`
	Title    string  `gorm:"type:varchar(200);not null"`
	FilePath string  `gorm:"type:varchar(255)"`

	AuthorID *uint `gorm:"index"`
	Author   *User `gorm:"foreignKey:AuthorID"`
}

func (FollowUp) TableName() string {
	return "follow_ups"
}
