package label

import (
	"bytes"
	"image/png"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRPNG(t *testing.T) {
	data, err := QRPNG("https://surat.example.org/verify/AGD/2026/000001")
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("hasil bukan PNG")
	}
}

func TestCode128PNG(t *testing.T) {
	data, err := Code128PNG("AGD/2026/000001")
	if err != nil {
		t.Fatalf("Code128PNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 120 {
		t.Fatalf("ukuran = %dx%d, want 400x120", bounds.Dx(), bounds.Dy())
	}
}

func TestCode128PNGRejectsEmpty(t *testing.T) {
	if _, err := Code128PNG(""); err == nil {
		t.Fatal("expected error untuk isi kosong")
	}
}
