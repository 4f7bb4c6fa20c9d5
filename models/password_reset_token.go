package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPasswordResetTokenExpired = errors.New("password reset token expired")
	ErrPasswordResetTokenUsed    = errors.New("password reset token already used")
)

const PasswordResetTokenTTL = time.Hour

type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	UsedAt    *time.Time

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t PasswordResetToken) IsExpired(reference time.Time) bool {
	return !reference.Before(t.ExpiresAt)
}

// Consume menandai token terpakai; update bersyarat agar token tidak bisa
// dipakai dua kali oleh request paralel.
func (t *PasswordResetToken) Consume(tx *gorm.DB, now time.Time) error {
	if t.Used {
		return ErrPasswordResetTokenUsed
	}
	if t.IsExpired(now) {
		return ErrPasswordResetTokenExpired
	}

	res := tx.Model(&PasswordResetToken{}).
		Where("id = ? AND used = ? AND expires_at > ?", t.ID, false, now).
		Updates(map[string]any{"used": true, "used_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPasswordResetTokenUsed
	}

	t.Used = true
	t.UsedAt = &now
	return nil
}
