package services

import (
	"context"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"
	"github.com/Rjvaldo21/correspondence/utils/events"

	"gorm.io/gorm"
)

// OutgoingService memegang lifecycle surat keluar:
// DRAFT → REVIEW → APPROVED → FINAL → SENT → ARCH, linier kecuali force.
type OutgoingService struct {
	db     *gorm.DB
	labels *LabelService
}

func NewOutgoingService(db *gorm.DB, labels *LabelService) *OutgoingService {
	return &OutgoingService{db: db, labels: labels}
}

// Transition menggeser status surat keluar dalam satu read-modify-write
// atomik. Penolakan guard mengembalikan *GuardError dengan kode alasan dan
// membiarkan surat tak tersentuh.
//
// Guard transisi ke APPROVED: minimal satu review step terdaftar
// (missing_reviews). Guard transisi ke FINAL: semua review step sudah
// approved (reviews_incomplete). Transisi ke SENT/ARCH tidak membawa guard
// tambahan. Nomor surat diberikan saat status tujuan mewajibkannya dan
// nomor masih kosong — permanen, dengan prefix jenis dokumen surat
// (fallback ST).
//
// force (admin) boleh melompati urutan linier dan tidak pernah
// mengosongkan nomor yang sudah terbit.
func (s *OutgoingService) Transition(ctx context.Context, letterID uint, target models.OutgoingStatus, force bool) (*models.OutgoingLetter, error) {
	if !target.IsValid() {
		return nil, NewValidationError("status", "status tidak dikenal")
	}

	var letter *models.OutgoingLetter
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		letter, err = lockOutgoing(tx, letterID)
		if err != nil {
			return err
		}

		if !force && target.Rank() != letter.Status.Rank()+1 {
			return &GuardError{Reason: ReasonNotNextStatus}
		}

		switch target {
		case models.OutgoingApproved:
			if len(letter.Reviews) == 0 {
				return &GuardError{Reason: ReasonMissingReviews}
			}
		case models.OutgoingFinal:
			for _, r := range letter.Reviews {
				if !r.IsApproved() {
					return &GuardError{Reason: ReasonReviewsIncomplete}
				}
			}
		}

		updates := map[string]any{"status": target}
		if target.NumberRequired() && !letter.HasNumber() {
			num, err := utils.GenerateOutgoingNumber(tx, string(letter.TemplateType))
			if err != nil {
				return err
			}
			letter.Number = &num
			updates["number"] = num
		}

		return tx.Model(letter).Updates(updates).Error
	})
	if err != nil {
		if utils.IsDuplicateError(err) {
			return nil, ErrNumberConflict
		}
		return nil, err
	}

	old := letter.Status
	letter.Status = target

	// QR verifikasi dibuat segera setelah nomor terbit; idempoten.
	if s.labels != nil {
		s.labels.EnsureOutgoingQR(ctx, letter)
	}

	events.Publish(events.LetterEvent{
		Type:      events.OutgoingStatusMoved,
		Kind:      models.TargetOutgoing,
		LetterID:  letter.ID,
		Number:    letter.NumberValue(),
		Subject:   letter.Subject,
		OldStatus: string(old),
		NewStatus: string(target),
	})
	return letter, nil
}

// AddReviewStep menambah titik paraf pada rantai review; urutan unik per
// surat (unique index menolak duplikat).
func (s *OutgoingService) AddReviewStep(letterID uint, order uint, reviewerID uint, note string) (*models.ReviewStep, error) {
	step := &models.ReviewStep{
		OutgoingLetterID: letterID,
		StepOrder:        order,
		ReviewerID:       reviewerID,
		Note:             note,
	}
	if err := s.db.Create(step).Error; err != nil {
		if utils.IsDuplicateError(err) {
			return nil, NewValidationError("step_order", "urutan review sudah terpakai untuk surat ini")
		}
		return nil, err
	}
	return step, nil
}

// ApproveReview mengisi approved_at sekali; pemanggilan ulang no-op.
func (s *OutgoingService) ApproveReview(stepID uint, actor *models.User, note string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var step models.ReviewStep
		if err := tx.First(&step, stepID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		ok, err := NewPermissionService(tx).CanUserApproveReview(actor, &step)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}

		if step.IsApproved() {
			return nil
		}

		now := time.Now()
		updates := map[string]any{"approved_at": &now}
		if note != "" {
			updates["note"] = note
		}
		return tx.Model(&step).Updates(updates).Error
	})
}

func lockOutgoing(tx *gorm.DB, id uint) (*models.OutgoingLetter, error) {
	var letter models.OutgoingLetter
	if err := tx.Preload("Reviews").First(&letter, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &letter, nil
}
