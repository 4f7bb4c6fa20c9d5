package config

import (
	"os"
	"strings"
)

// VerifyBaseURL mengembalikan base URL halaman verifikasi publik.
// PUBLIC_BASE_URL kosong menghasilkan path relatif ("/verify/") — berguna
// saat aplikasi belum punya domain publik.
func VerifyBaseURL() string {
	base := strings.TrimSuffix(os.Getenv("PUBLIC_BASE_URL"), "/")

	path := os.Getenv("PUBLIC_VERIFY_PATH")
	if path == "" {
		path = "/verify/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	return base + path
}

// VerifyURL membangun URL verifikasi publik untuk sebuah kode dokumen
// (nomor agenda atau nomor surat keluar).
func VerifyURL(code string) string {
	return VerifyBaseURL() + code
}
