// Package label membuat gambar label dokumen: QR berisi URL verifikasi
// publik dan barcode Code128 berisi nomor agenda itu sendiri.
package label

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrSize        = 256
	barcodeWidth  = 400
	barcodeHeight = 120
)

// QRPNG mengembalikan PNG QR code untuk data (biasanya URL verifikasi).
func QRPNG(data string) ([]byte, error) {
	b, err := qrcode.Encode(data, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return b, nil
}

// Code128PNG mengembalikan PNG barcode Code128 untuk data (nomor agenda).
func Code128PNG(data string) ([]byte, error) {
	bc, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}
	scaled, err := barcode.Scale(bc, barcodeWidth, barcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("scale code128: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
