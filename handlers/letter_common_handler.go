package handlers

import (
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils/storage"
)

// AddPresignedURLsIncoming mengganti object key dengan presigned URL agar
// file bisa langsung dibuka dari frontend.
func AddPresignedURLsIncoming(letter *models.IncomingLetter) {
	letter.ScanPDF = presign(letter.ScanPDF)
	letter.QRImage = presign(letter.QRImage)
	letter.BarcodeImage = presign(letter.BarcodeImage)
}

func AddPresignedURLsOutgoing(letter *models.OutgoingLetter) {
	letter.SignedPDF = presign(letter.SignedPDF)
	letter.QRImage = presign(letter.QRImage)
}

func presign(key string) string {
	if key == "" {
		return ""
	}
	url, err := storage.GetPresignedURL(key)
	if err != nil {
		return key
	}
	return url
}
