package services

import (
	"context"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"
	"github.com/Rjvaldo21/correspondence/utils/events"

	"gorm.io/gorm"
)

// IncomingService memegang lifecycle surat masuk:
// DRAFT → REG → DISP → PROG → DONE → ARCH.
type IncomingService struct {
	db     *gorm.DB
	labels *LabelService
}

func NewIncomingService(db *gorm.DB, labels *LabelService) *IncomingService {
	return &IncomingService{db: db, labels: labels}
}

// Register mencatat surat masuk: nomor agenda diberikan sekali di dalam
// transaksi pembuatan (immutable setelahnya), lalu label QR/barcode
// dipastikan ada. Kegagalan label tidak menggagalkan registrasi.
func (s *IncomingService) Register(ctx context.Context, letter *models.IncomingLetter) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if letter.AgendaNumber == "" {
			num, err := utils.GenerateAgendaNumber(tx)
			if err != nil {
				return err
			}
			letter.AgendaNumber = num
		}
		if letter.Status == "" {
			letter.Status = models.IncomingRegistered
		}
		return tx.Create(letter).Error
	})
	if err != nil {
		if utils.IsDuplicateError(err) {
			return ErrNumberConflict
		}
		return err
	}

	if s.labels != nil {
		s.labels.EnsureIncomingLabels(ctx, letter)
	}

	events.Publish(events.LetterEvent{
		Type:      events.IncomingRegistered,
		Kind:      models.TargetIncoming,
		LetterID:  letter.ID,
		Number:    letter.AgendaNumber,
		Subject:   letter.Subject,
		NewStatus: string(letter.Status),
	})
	return nil
}

// MarkDone menandai surat selesai ditindaklanjuti.
func (s *IncomingService) MarkDone(letterID uint) error {
	return s.advance(letterID, models.IncomingDone, nil)
}

// Archive mengarsip surat. Saat itu juga, bila surat punya tag klasifikasi
// dan belum punya batas retensi, batasnya dihitung dari kode tag pertama
// dan tanggal pembuatan surat; disposed_at diisi tanggal hari ini.
func (s *IncomingService) Archive(letterID uint) error {
	return s.advance(letterID, models.IncomingArchived, func(tx *gorm.DB, letter *models.IncomingLetter, updates map[string]any) error {
		today := time.Now().Truncate(24 * time.Hour)
		updates["disposed_at"] = &today

		if letter.RetentionUntil == nil && len(letter.ClassificationTags) > 0 {
			tag := letter.ClassificationTags[0]
			until := utils.ComputeRetentionUntil(tag.Name, letter.CreatedAt)
			updates["retention_until"] = &until
			if letter.RetentionClass == "" {
				updates["retention_class"] = tag.Name
			}
		}
		return nil
	})
}

// ForceStatus adalah override administratif: boleh memaksa status apa pun,
// tapi tidak pernah menghapus nomor agenda atau field retensi yang sudah
// terisi (update di sini memang tidak menyentuh kolom-kolom itu).
func (s *IncomingService) ForceStatus(letterID uint, target models.IncomingStatus) error {
	if !target.IsValid() {
		return NewValidationError("status", "status tidak dikenal")
	}
	var letter *models.IncomingLetter
	var old models.IncomingStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		l, err := lockIncoming(tx, letterID)
		if err != nil {
			return err
		}
		old = l.Status
		if err := tx.Model(l).Update("status", target).Error; err != nil {
			return err
		}
		letter = l
		return nil
	})
	if err != nil {
		return err
	}
	publishIncomingMove(letter, old, target)
	return nil
}

// advance menaikkan status (tidak pernah mundur otomatis) dan menjalankan
// mutasi tambahan di transaksi yang sama. Event status baru terbit setelah
// transaksi commit; rollback tidak boleh memancarkan notifikasi.
func (s *IncomingService) advance(letterID uint, target models.IncomingStatus, extra func(*gorm.DB, *models.IncomingLetter, map[string]any) error) error {
	var letter *models.IncomingLetter
	var old models.IncomingStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		l, err := lockIncoming(tx, letterID)
		if err != nil {
			return err
		}
		if l.Status.Rank() >= target.Rank() {
			return nil
		}

		old = l.Status
		updates := map[string]any{"status": target}
		if extra != nil {
			if err := extra(tx, l, updates); err != nil {
				return err
			}
		}
		if err := tx.Model(l).Updates(updates).Error; err != nil {
			return err
		}

		letter = l
		return nil
	})
	if err != nil {
		return err
	}
	if letter != nil {
		publishIncomingMove(letter, old, target)
	}
	return nil
}

func lockIncoming(tx *gorm.DB, id uint) (*models.IncomingLetter, error) {
	var letter models.IncomingLetter
	if err := tx.Preload("ClassificationTags").First(&letter, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &letter, nil
}

func publishIncomingMove(letter *models.IncomingLetter, old, target models.IncomingStatus) {
	events.Publish(events.LetterEvent{
		Type:      events.IncomingStatusMoved,
		Kind:      models.TargetIncoming,
		LetterID:  letter.ID,
		Number:    letter.AgendaNumber,
		Subject:   letter.Subject,
		OldStatus: string(old),
		NewStatus: string(target),
	})
}
