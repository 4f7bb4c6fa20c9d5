package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/Rjvaldo21/correspondence/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

type memStore struct {
	objects map[string][]byte
	uploads int
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) UploadBytes(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.uploads++
	m.objects[key] = data
	return key, nil
}

func testVerifyURL(code string) string {
	return "https://surat.example.org/verify/" + code
}

func TestEnsureIncomingLabelsGeneratesBoth(t *testing.T) {
	db := openTestDB(t)
	store := newMemStore()
	svc := NewLabelService(db, store, testVerifyURL)

	letter := seedIncoming(t, db, &models.IncomingLetter{AgendaNumber: "AGD/2026/000042"})

	svc.EnsureIncomingLabels(context.Background(), letter)

	if letter.QRImage == "" || letter.BarcodeImage == "" {
		t.Fatalf("label kosong: qr=%q barcode=%q", letter.QRImage, letter.BarcodeImage)
	}
	for key, data := range store.objects {
		if !bytes.HasPrefix(data, pngMagic) {
			t.Fatalf("objek %s bukan PNG", key)
		}
	}

	var got models.IncomingLetter
	if err := db.First(&got, letter.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.QRImage != letter.QRImage || got.BarcodeImage != letter.BarcodeImage {
		t.Fatal("object key tidak tersimpan ke database")
	}

	// Idempoten: panggilan kedua tidak meng-upload ulang.
	before := store.uploads
	svc.EnsureIncomingLabels(context.Background(), &got)
	if store.uploads != before {
		t.Fatalf("uploads = %d, want %d (tanpa upload baru)", store.uploads, before)
	}
}

func TestEnsureIncomingLabelsSkipsUnnumbered(t *testing.T) {
	db := openTestDB(t)
	store := newMemStore()
	svc := NewLabelService(db, store, testVerifyURL)

	letter := seedIncoming(t, db, &models.IncomingLetter{Status: models.IncomingDraft})

	svc.EnsureIncomingLabels(context.Background(), letter)

	if store.uploads != 0 {
		t.Fatalf("uploads = %d untuk surat tanpa nomor", store.uploads)
	}
}

func TestEnsureOutgoingQR(t *testing.T) {
	db := openTestDB(t)
	store := newMemStore()
	svc := NewLabelService(db, store, testVerifyURL)

	letter := seedOutgoing(t, db, &models.OutgoingLetter{
		Number: strPtr("ST/2026/00009"),
		Status: models.OutgoingFinal,
	})

	svc.EnsureOutgoingQR(context.Background(), letter)

	if letter.QRImage == "" {
		t.Fatal("QR tidak dibuat")
	}
	data, ok := store.objects[letter.QRImage]
	if !ok || !bytes.HasPrefix(data, pngMagic) {
		t.Fatalf("objek QR %q tidak ada atau bukan PNG", letter.QRImage)
	}

	before := store.uploads
	svc.EnsureOutgoingQR(context.Background(), letter)
	if store.uploads != before {
		t.Fatalf("uploads = %d, want %d (idempoten)", store.uploads, before)
	}
}
