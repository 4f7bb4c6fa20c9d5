package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized: user not authenticated")
	ErrForbidden    = errors.New("forbidden: insufficient permissions")

	// ErrNotFound sengaja generik: pemanggil (termasuk lookup verifikasi
	// publik) tidak boleh bisa membedakan "prefix salah" dari "record
	// tidak ada".
	ErrNotFound = errors.New("resource not found")

	// ErrNumberConflict: tabrakan nomor yang lolos semua retry dan
	// tertangkap unique constraint. Retryable oleh caller.
	ErrNumberConflict = errors.New("number conflict, please retry")
)

// Alasan penolakan guard transisi surat keluar.
const (
	ReasonMissingReviews    = "missing_reviews"
	ReasonReviewsIncomplete = "reviews_incomplete"
	ReasonNotNextStatus     = "not_next_status"
)

// GuardError: transisi status ditolak karena prasyaratnya belum terpenuhi.
// State surat tidak berubah.
type GuardError struct {
	Reason string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("transition rejected: %s", e.Reason)
}

// ValidationError membawa error per field untuk dikembalikan ke form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
