package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"
)

func TestTransitionRejectsStatusSkip(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	letter := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Nota dinas"})

	_, err := svc.Transition(context.Background(), letter.ID, models.OutgoingApproved, false)
	var gerr *GuardError
	if !errors.As(err, &gerr) || gerr.Reason != ReasonNotNextStatus {
		t.Fatalf("err = %v, want GuardError(not_next_status)", err)
	}

	var got models.OutgoingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.OutgoingDraft {
		t.Fatalf("status berubah jadi %q padahal transisi ditolak", got.Status)
	}
}

func TestTransitionApprovedRequiresReviewChain(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	letter := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Undangan"})

	if _, err := svc.Transition(context.Background(), letter.ID, models.OutgoingReview, false); err != nil {
		t.Fatalf("ke REVIEW: %v", err)
	}

	_, err := svc.Transition(context.Background(), letter.ID, models.OutgoingApproved, false)
	var gerr *GuardError
	if !errors.As(err, &gerr) || gerr.Reason != ReasonMissingReviews {
		t.Fatalf("err = %v, want GuardError(missing_reviews)", err)
	}
}

func TestTransitionFinalAssignsNumberOnce(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	reviewer := seedUser(t, db, "direktur", models.RoleDirektur)
	letter := seedOutgoing(t, db, &models.OutgoingLetter{
		Subject:      "Surat tugas",
		TemplateType: models.DocKarta,
	})

	if _, err := svc.Transition(context.Background(), letter.ID, models.OutgoingReview, false); err != nil {
		t.Fatalf("ke REVIEW: %v", err)
	}

	step, err := svc.AddReviewStep(letter.ID, 1, reviewer.ID, "")
	if err != nil {
		t.Fatalf("add review step: %v", err)
	}

	if _, err := svc.Transition(context.Background(), letter.ID, models.OutgoingApproved, false); err != nil {
		t.Fatalf("ke APPROVED: %v", err)
	}

	// Nomor belum boleh terbit sebelum FINAL.
	var got models.OutgoingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Number != nil {
		t.Fatalf("nomor sudah terisi di APPROVED: %q", *got.Number)
	}

	// FINAL dengan step belum approved ditolak.
	_, err = svc.Transition(context.Background(), letter.ID, models.OutgoingFinal, false)
	var gerr *GuardError
	if !errors.As(err, &gerr) || gerr.Reason != ReasonReviewsIncomplete {
		t.Fatalf("err = %v, want GuardError(reviews_incomplete)", err)
	}

	if err := svc.ApproveReview(step.ID, reviewer, "OK"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	updated, err := svc.Transition(context.Background(), letter.ID, models.OutgoingFinal, false)
	if err != nil {
		t.Fatalf("ke FINAL: %v", err)
	}
	want := fmt.Sprintf("ST/%d/00001", time.Now().Year())
	if updated.NumberValue() != want {
		t.Fatalf("nomor = %q, want %q", updated.NumberValue(), want)
	}

	// Nomor permanen: transisi berikutnya tidak menyentuhnya.
	sent, err := svc.Transition(context.Background(), letter.ID, models.OutgoingSent, false)
	if err != nil {
		t.Fatalf("ke SENT: %v", err)
	}
	if sent.NumberValue() != want {
		t.Fatalf("nomor berubah setelah FINAL: %q", sent.NumberValue())
	}
}

func TestDraftsCoexistWithoutNumbers(t *testing.T) {
	db := openTestDB(t)

	// Nomor belum terbit = NULL, jadi banyak draft hidup berdampingan
	// tanpa menabrak unique index.
	first := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Draft pertama"})
	second := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Draft kedua"})
	if first.Number != nil || second.Number != nil {
		t.Fatalf("draft sudah bernomor: %v %v", first.Number, second.Number)
	}

	// Nomor yang sudah terbit tetap dijaga unik.
	num := fmt.Sprintf("ST/%d/00001", time.Now().Year())
	if err := db.Model(first).Update("number", num).Error; err != nil {
		t.Fatalf("nomor pertama: %v", err)
	}
	err := db.Model(second).Update("number", num).Error
	if !utils.IsDuplicateError(err) {
		t.Fatalf("err = %v, want unique violation", err)
	}
}

func TestForceTransitionSkipsChain(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	letter := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Lompat status"})

	// force (admin) melompati urutan linier; SENT tidak membawa guard
	// review, jadi surat tanpa step pun lolos dan langsung bernomor.
	updated, err := svc.Transition(context.Background(), letter.ID, models.OutgoingSent, true)
	if err != nil {
		t.Fatalf("force ke SENT: %v", err)
	}
	if updated.Status != models.OutgoingSent || !updated.HasNumber() {
		t.Fatalf("status=%q number=%q setelah force SENT", updated.Status, updated.NumberValue())
	}
}

func TestForceTransitionKeepsFinalGuard(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	reviewer := seedUser(t, db, "direktur", models.RoleDirektur)
	letter := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Paksa final"})

	if _, err := svc.AddReviewStep(letter.ID, 1, reviewer.ID, ""); err != nil {
		t.Fatalf("add review step: %v", err)
	}

	// Step terdaftar tapi belum approved: FINAL tetap ditolak walau force.
	_, err := svc.Transition(context.Background(), letter.ID, models.OutgoingFinal, true)
	var gerr *GuardError
	if !errors.As(err, &gerr) || gerr.Reason != ReasonReviewsIncomplete {
		t.Fatalf("err = %v, want GuardError(reviews_incomplete)", err)
	}
}

func TestAddReviewStepRejectsDuplicateOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	reviewer := seedUser(t, db, "direktur", models.RoleDirektur)
	other := seedUser(t, db, "sekre", models.RoleSekretariat)
	letter := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Review ganda"})

	if _, err := svc.AddReviewStep(letter.ID, 1, reviewer.ID, ""); err != nil {
		t.Fatalf("step pertama: %v", err)
	}

	_, err := svc.AddReviewStep(letter.ID, 1, other.ID, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if _, ok := verr.Fields["step_order"]; !ok {
		t.Fatalf("fields = %v, want step_order", verr.Fields)
	}
}

func TestApproveReviewOnlyByReviewer(t *testing.T) {
	db := openTestDB(t)
	svc := NewOutgoingService(db, nil)

	reviewer := seedUser(t, db, "direktur", models.RoleDirektur)
	intruder := seedUser(t, db, "staf1", models.RoleStaf)
	letter := seedOutgoing(t, db, &models.OutgoingLetter{Subject: "Paraf"})

	step, err := svc.AddReviewStep(letter.ID, 1, reviewer.ID, "")
	if err != nil {
		t.Fatalf("add review step: %v", err)
	}

	if err := svc.ApproveReview(step.ID, intruder, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	if err := svc.ApproveReview(step.ID, reviewer, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var got models.ReviewStep
	if err := db.First(&got, step.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	first := *got.ApprovedAt

	// Approve ulang no-op.
	if err := svc.ApproveReview(step.ID, reviewer, ""); err != nil {
		t.Fatalf("approve ulang: %v", err)
	}
	if err := db.First(&got, step.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.ApprovedAt.Equal(first) {
		t.Fatalf("approved_at bergeser: %v -> %v", first, got.ApprovedAt)
	}
}
