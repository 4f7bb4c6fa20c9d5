package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils/events"
)

func drainLetterEvents() {
	for {
		select {
		case <-events.LetterEventBus:
		default:
			return
		}
	}
}

func TestCreateDispositionRejectsPastDueDate(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000001"})

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		DueDate:     &yesterday,
		AssigneeIDs: []uint{staf.ID},
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if _, ok := verr.Fields["due_date"]; !ok {
		t.Fatalf("fields = %v, want due_date", verr.Fields)
	}
}

func TestCreateDispositionAcceptsDueDateToday(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000011"})

	// Tengah malam lokal hari ini, persis seperti hasil parse form
	// due_date. Tidak boleh ditolak sebagai masa lalu di zona mana pun.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	_, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		DueDate:     &today,
		AssigneeIDs: []uint{staf.ID},
	})
	if err != nil {
		t.Fatalf("due date hari ini ditolak: %v", err)
	}
}

func TestCreateDispositionRequiresAssignees(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000002"})

	_, err := svc.Create(CreateDispositionInput{
		LetterID: letter.ID,
		SenderID: direktur.ID,
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestCreateDispositionDeduplicatesAssignees(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000003"})

	dispo, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		Note:        "Tolong ditindaklanjuti",
		AssigneeIDs: []uint{staf.ID, staf.ID, staf.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var n int64
	if err := db.Model(&models.DispositionAssignment{}).
		Where("disposition_id = ?", dispo.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("assignments = %d, want 1", n)
	}
}

func TestCreateDispositionRaisesLetterStatus(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{
		AgendaNumber: "AGD/2026/000004",
		Status:       models.IncomingRegistered,
	})

	if _, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		AssigneeIDs: []uint{staf.ID},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var got models.IncomingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.IncomingDisposed {
		t.Fatalf("status = %q, want DISP", got.Status)
	}

	// Disposisi lanjutan pada surat yang sudah PROG tidak menurunkan status.
	if err := db.Model(&got).Update("status", models.IncomingInProgress).Error; err != nil {
		t.Fatalf("set PROG: %v", err)
	}
	if _, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		AssigneeIDs: []uint{staf.ID},
	}); err != nil {
		t.Fatalf("create kedua: %v", err)
	}
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.IncomingInProgress {
		t.Fatalf("status = %q, want PROG tetap", got.Status)
	}
}

func TestCreateDispositionPublishesOnlyAfterCommit(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)

	// Surat tidak ada: transaksi rollback, bus harus tetap kosong.
	drainLetterEvents()
	if _, err := svc.Create(CreateDispositionInput{
		LetterID:    99999,
		SenderID:    direktur.ID,
		AssigneeIDs: []uint{staf.ID},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	select {
	case ev := <-events.LetterEventBus:
		t.Fatalf("event %q terbit padahal transaksi gagal", ev.Type)
	default:
	}

	// Jalur sukses tetap menghasilkan perpindahan status dan event disposisi.
	letter := seedIncoming(t, db, &models.IncomingLetter{
		AgendaNumber: "AGD/2026/000012",
		Status:       models.IncomingRegistered,
	})
	dispo, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		AssigneeIDs: []uint{staf.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	seen := map[events.LetterEventType]bool{}
	for {
		select {
		case ev := <-events.LetterEventBus:
			seen[ev.Type] = true
			if ev.Type == events.DispositionCreated && ev.DispositionID != dispo.ID {
				t.Fatalf("disposition id = %d, want %d", ev.DispositionID, dispo.ID)
			}
			continue
		default:
		}
		break
	}
	if !seen[events.IncomingStatusMoved] || !seen[events.DispositionCreated] {
		t.Fatalf("event terlihat = %v, want perpindahan status dan disposisi", seen)
	}
}

func TestMarkCompleteBackfillsReadAt(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000005"})

	dispo, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		AssigneeIDs: []uint{staf.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var a models.DispositionAssignment
	if err := db.Where("disposition_id = ?", dispo.ID).First(&a).Error; err != nil {
		t.Fatalf("load assignment: %v", err)
	}

	if err := svc.MarkComplete(a.ID, staf); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	if err := db.First(&a, a.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if a.ReadAt == nil || a.CompletedAt == nil {
		t.Fatalf("read_at=%v completed_at=%v, keduanya harus terisi", a.ReadAt, a.CompletedAt)
	}
	if a.ReadAt.After(*a.CompletedAt) {
		t.Fatalf("read_at %v sesudah completed_at %v", a.ReadAt, a.CompletedAt)
	}

	// Pemanggilan ulang no-op, timestamp tidak bergeser.
	first := *a.CompletedAt
	if err := svc.MarkComplete(a.ID, staf); err != nil {
		t.Fatalf("mark complete ulang: %v", err)
	}
	if err := db.First(&a, a.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !a.CompletedAt.Equal(first) {
		t.Fatalf("completed_at bergeser: %v -> %v", first, a.CompletedAt)
	}
}

func TestMarkReadForbiddenForOtherStaf(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	other := seedUser(t, db, "staf2", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000006"})

	dispo, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		AssigneeIDs: []uint{staf.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var a models.DispositionAssignment
	if err := db.Where("disposition_id = ?", dispo.ID).First(&a).Error; err != nil {
		t.Fatalf("load assignment: %v", err)
	}

	if err := svc.MarkRead(a.ID, other); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Direktur boleh bertindak atas nama assignee.
	if err := svc.MarkRead(a.ID, direktur); err != nil {
		t.Fatalf("direktur mark read: %v", err)
	}
}

func TestOverdueSkipsCompletedAssignments(t *testing.T) {
	db := openTestDB(t)
	svc := NewDispositionService(db)

	direktur := seedUser(t, db, "direktur", models.RoleDirektur)
	staf := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000007"})

	due := time.Now().AddDate(0, 0, 2)
	dispo, err := svc.Create(CreateDispositionInput{
		LetterID:    letter.ID,
		SenderID:    direktur.ID,
		DueDate:     &due,
		AssigneeIDs: []uint{staf.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ref := time.Now().AddDate(0, 0, 7)
	got, err := svc.Overdue(ref)
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(got) != 1 || got[0].ID != dispo.ID {
		t.Fatalf("overdue = %v, want satu disposisi", got)
	}

	var a models.DispositionAssignment
	if err := db.Where("disposition_id = ?", dispo.ID).First(&a).Error; err != nil {
		t.Fatalf("load assignment: %v", err)
	}
	if err := svc.MarkComplete(a.ID, staf); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	got, err = svc.Overdue(ref)
	if err != nil {
		t.Fatalf("overdue kedua: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("overdue = %d entri, want 0 setelah selesai", len(got))
	}
}
