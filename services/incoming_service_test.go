package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
)

func TestRegisterAssignsSequentialAgendaNumbers(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	year := time.Now().Year()
	first := &models.IncomingLetter{Origin: "Kementerian A", Subject: "Undangan rapat"}
	if err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("register: %v", err)
	}
	if want := fmt.Sprintf("AGD/%d/000001", year); first.AgendaNumber != want {
		t.Fatalf("agenda number = %q, want %q", first.AgendaNumber, want)
	}
	if first.Status != models.IncomingRegistered {
		t.Fatalf("status = %q, want REG", first.Status)
	}

	second := &models.IncomingLetter{Origin: "Kementerian B", Subject: "Permohonan data"}
	if err := svc.Register(context.Background(), second); err != nil {
		t.Fatalf("register second: %v", err)
	}
	if want := fmt.Sprintf("AGD/%d/000002", year); second.AgendaNumber != want {
		t.Fatalf("agenda number = %q, want %q", second.AgendaNumber, want)
	}
}

func TestRegisterKeepsPreassignedNumber(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	letter := &models.IncomingLetter{
		Origin:       "Dinas X",
		Subject:      "Surat pindahan",
		AgendaNumber: "AGD/2019/000777",
	}
	if err := svc.Register(context.Background(), letter); err != nil {
		t.Fatalf("register: %v", err)
	}
	if letter.AgendaNumber != "AGD/2019/000777" {
		t.Fatalf("agenda number overwritten: %q", letter.AgendaNumber)
	}
}

func TestAgendaNumberSurvivesStatusChanges(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	letter := &models.IncomingLetter{Origin: "Dinas Y", Subject: "Laporan"}
	if err := svc.Register(context.Background(), letter); err != nil {
		t.Fatalf("register: %v", err)
	}
	assigned := letter.AgendaNumber

	if err := svc.MarkDone(letter.ID); err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if err := svc.ForceStatus(letter.ID, models.IncomingInProgress); err != nil {
		t.Fatalf("force status: %v", err)
	}

	var got models.IncomingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.AgendaNumber != assigned {
		t.Fatalf("agenda number changed: %q -> %q", assigned, got.AgendaNumber)
	}
	if got.Status != models.IncomingInProgress {
		t.Fatalf("status = %q, want PROG (forced)", got.Status)
	}
}

func TestArchiveComputesRetentionFromFirstTag(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	tag := models.ClassificationTag{Name: "RHS"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	created := time.Date(2020, time.March, 10, 9, 0, 0, 0, time.UTC)
	letter := seedIncoming(t, db, &models.IncomingLetter{
		Subject:            "Dokumen rahasia",
		Status:             models.IncomingDone,
		AgendaNumber:       "AGD/2020/000031",
		ClassificationTags: []models.ClassificationTag{tag},
	})
	if err := db.Model(letter).Update("created_at", created).Error; err != nil {
		t.Fatalf("set created_at: %v", err)
	}

	if err := svc.Archive(letter.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	var got models.IncomingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.IncomingArchived {
		t.Fatalf("status = %q, want ARCH", got.Status)
	}
	if got.RetentionUntil == nil {
		t.Fatal("retention_until not set")
	}
	if y, m, d := got.RetentionUntil.Date(); y != 2040 || m != time.March || d != 10 {
		t.Fatalf("retention_until = %v, want 2040-03-10", got.RetentionUntil)
	}
	if got.RetentionClass != "RHS" {
		t.Fatalf("retention_class = %q, want RHS", got.RetentionClass)
	}
	if got.DisposedAt == nil {
		t.Fatal("disposed_at not set")
	}
	if got.DisposedAt.Year() != time.Now().Year() {
		t.Fatalf("disposed_at = %v, want today", got.DisposedAt)
	}
}

func TestArchiveKeepsExistingRetention(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	tag := models.ClassificationTag{Name: "UM"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	until := time.Date(2031, time.June, 1, 0, 0, 0, 0, time.UTC)
	letter := seedIncoming(t, db, &models.IncomingLetter{
		Subject:            "Sudah punya retensi",
		Status:             models.IncomingDone,
		AgendaNumber:       "AGD/2021/000007",
		RetentionUntil:     &until,
		RetentionClass:     "UM",
		ClassificationTags: []models.ClassificationTag{tag},
	})

	if err := svc.Archive(letter.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	var got models.IncomingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.RetentionUntil == nil || !got.RetentionUntil.Equal(until) {
		t.Fatalf("retention_until berubah: %v", got.RetentionUntil)
	}
}

func TestAdvanceIgnoresBackwardMove(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	letter := seedIncoming(t, db, &models.IncomingLetter{
		Subject:      "Sudah arsip",
		Status:       models.IncomingArchived,
		AgendaNumber: "AGD/2022/000099",
	})

	if err := svc.MarkDone(letter.ID); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	var got models.IncomingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.IncomingArchived {
		t.Fatalf("status mundur ke %q", got.Status)
	}
}

func TestIncomingNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewIncomingService(db, nil)

	if err := svc.MarkDone(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
