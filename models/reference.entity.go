package models

import "gorm.io/gorm"

// ClassificationTag adalah referensi bersama (UM/TER/RHS, dst.); satu tag
// dapat terpasang ke banyak surat. Nama tag dipakai sebagai kode retensi.
type ClassificationTag struct {
	gorm.Model
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (ClassificationTag) TableName() string {
	return "classification_tags"
}

// Attachment adalah lampiran generik; referensi bersama, bukan milik satu
// surat (tidak ikut terhapus bersama surat).
type Attachment struct {
	gorm.Model
	Title    string `gorm:"type:varchar(200);not null"`
	FilePath string `gorm:"type:varchar(255);not null"`

	UploadedByID *uint `gorm:"index"`
	UploadedBy   *User `gorm:"foreignKey:UploadedByID"`
}

func (Attachment) TableName() string {
	return "attachments"
}
