package services

import (
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils/events"

	"gorm.io/gorm"
)

// DispositionService mencatat routing surat masuk ke staf dan progres
// baca/selesai tiap assignee.
type DispositionService struct {
	db    *gorm.DB
	perms *PermissionService
}

func NewDispositionService(db *gorm.DB) *DispositionService {
	return &DispositionService{db: db, perms: NewPermissionService(db)}
}

type CreateDispositionInput struct {
	LetterID      uint
	SenderID      uint
	Note          string
	DueDate       *time.Time
	AllowParallel bool
	ParentID      *uint
	AssigneeIDs   []uint
}

// Create mempersistenkan disposisi, menetapkan assignee (idempoten per
// pasangan disposisi+assignee), dan menggeser surat induk ke status DISP
// bila masih di bawahnya.
func (s *DispositionService) Create(in CreateDispositionInput) (*models.Disposition, error) {
	if in.DueDate != nil && in.DueDate.Before(startOfToday()) {
		return nil, NewValidationError("due_date", "data-limite tidak boleh di masa lalu")
	}
	if len(in.AssigneeIDs) == 0 {
		return nil, NewValidationError("assignees", "minimal satu penerima disposisi")
	}

	dispo := &models.Disposition{
		IncomingLetterID: in.LetterID,
		SenderID:         &in.SenderID,
		Note:             in.Note,
		DueDate:          in.DueDate,
		AllowParallel:    in.AllowParallel,
		ParentID:         in.ParentID,
	}

	var moved *models.IncomingLetter
	var oldStatus models.IncomingStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		letter, err := lockIncoming(tx, in.LetterID)
		if err != nil {
			return err
		}

		if err := tx.Create(dispo).Error; err != nil {
			return err
		}

		// Set union: duplikat assignee bukan error, cukup dilewati.
		for _, uid := range in.AssigneeIDs {
			assignment := models.DispositionAssignment{
				DispositionID: dispo.ID,
				AssigneeID:    uid,
			}
			if err := tx.Where("disposition_id = ? AND assignee_id = ?", dispo.ID, uid).
				FirstOrCreate(&assignment).Error; err != nil {
				return err
			}
		}

		if letter.Status.Rank() < models.IncomingDisposed.Rank() {
			oldStatus = letter.Status
			if err := tx.Model(letter).Update("status", models.IncomingDisposed).Error; err != nil {
				return err
			}
			moved = letter
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Event hanya terbit setelah commit; transaksi gagal tidak boleh
	// memicu notifikasi.
	if moved != nil {
		publishIncomingMove(moved, oldStatus, models.IncomingDisposed)
	}
	events.Publish(events.LetterEvent{
		Type:          events.DispositionCreated,
		Kind:          models.TargetIncoming,
		LetterID:      in.LetterID,
		DispositionID: dispo.ID,
		AssigneeIDs:   in.AssigneeIDs,
	})
	return dispo, nil
}

// MarkRead mengisi read_at sekali; pemanggilan ulang adalah no-op, bukan
// error.
func (s *DispositionService) MarkRead(assignmentID uint, actor *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		a, err := s.fetchAssignment(tx, assignmentID, actor)
		if err != nil {
			return err
		}
		if a.ReadAt != nil {
			return nil
		}
		now := time.Now()
		return tx.Model(a).Update("read_at", &now).Error
	})
}

// MarkComplete mengisi completed_at; read_at ikut terisi bila masih kosong
// sehingga read_at <= completed_at selalu berlaku.
func (s *DispositionService) MarkComplete(assignmentID uint, actor *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		a, err := s.fetchAssignment(tx, assignmentID, actor)
		if err != nil {
			return err
		}
		if a.CompletedAt != nil {
			return nil
		}

		now := time.Now()
		updates := map[string]any{"completed_at": &now}
		if a.ReadAt == nil {
			updates["read_at"] = &now
		}
		return tx.Model(a).Updates(updates).Error
	})
}

// Overdue mengembalikan disposisi yang due date-nya sudah lewat/jatuh hari
// ini dan masih punya assignment belum selesai. Dipakai reminder SLA.
func (s *DispositionService) Overdue(ref time.Time) ([]models.Disposition, error) {
	var dispos []models.Disposition
	err := s.db.
		Preload("Assignments", "completed_at IS NULL").
		Preload("Assignments.Assignee").
		Preload("IncomingLetter").
		Where("due_date IS NOT NULL AND due_date <= ?", ref).
		Order("due_date").
		Find(&dispos).Error
	if err != nil {
		return nil, err
	}

	out := dispos[:0]
	for _, d := range dispos {
		if len(d.Assignments) > 0 {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *DispositionService) fetchAssignment(tx *gorm.DB, id uint, actor *models.User) (*models.DispositionAssignment, error) {
	var a models.DispositionAssignment
	if err := tx.First(&a, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ok, err := s.perms.CanUserActOnAssignment(actor, &a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return &a, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
