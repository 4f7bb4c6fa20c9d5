package services

import (
	"errors"
	"testing"

	"github.com/Rjvaldo21/correspondence/models"
)

func TestLookupIncomingByAgendaNumber(t *testing.T) {
	db := openTestDB(t)
	svc := NewVerifyService(db)

	seedIncoming(t, db, &models.IncomingLetter{
		AgendaNumber: "AGD/2026/000123",
		Priority:     models.PrioritySegera,
		Status:       models.IncomingDisposed,
	})

	got, err := svc.Lookup("AGD/2026/000123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Kind != models.TargetIncoming {
		t.Fatalf("kind = %q, want incoming", got.Kind)
	}
	if got.Code != "AGD/2026/000123" {
		t.Fatalf("code = %q", got.Code)
	}
	if got.Status != models.IncomingDisposed.Label() {
		t.Fatalf("status = %q", got.Status)
	}
	if got.Priority != models.PrioritySegera.Label() {
		t.Fatalf("priority = %q", got.Priority)
	}
	if got.Template != "" || got.HasSignedPDF {
		t.Fatal("field surat keluar bocor ke hasil surat masuk")
	}
}

func TestLookupOutgoingByNumber(t *testing.T) {
	db := openTestDB(t)
	svc := NewVerifyService(db)

	seedOutgoing(t, db, &models.OutgoingLetter{
		Number:       strPtr("ND/2026/00044"),
		TemplateType: models.DocNota,
		Status:       models.OutgoingSent,
		SignedPDF:    "outgoing/signed/44.pdf",
	})

	got, err := svc.Lookup("ND/2026/00044")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Kind != models.TargetOutgoing {
		t.Fatalf("kind = %q, want outgoing", got.Kind)
	}
	if got.Template != models.DocNota.Label() {
		t.Fatalf("template = %q", got.Template)
	}
	if !got.HasSignedPDF {
		t.Fatal("HasSignedPDF = false, want true")
	}
}

func TestLookupUnknownCodesAreIndistinguishable(t *testing.T) {
	db := openTestDB(t)
	svc := NewVerifyService(db)

	cases := []string{
		"AGD/2026/999999",   // prefix benar, record tidak ada
		"ST/2026/99999",     // prefix keluar benar, record tidak ada
		"XX/2026/000001",    // prefix asing
		"bukan-kode",        // bukan format nomor sama sekali
		"",                  // kosong
	}
	for _, code := range cases {
		if _, err := svc.Lookup(code); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Lookup(%q) err = %v, want ErrNotFound", code, err)
		}
	}
}
