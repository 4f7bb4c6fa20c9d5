package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AgendaPrefix adalah prefix tetap nomor agenda surat masuk.
const AgendaPrefix = "AGD"

const numberingAttempts = 5

// GenerateAgendaNumber menghasilkan nomor agenda berikutnya untuk surat
// masuk, format AGD/<TAHUN>/<6 digit>. Urutan di-reset per tahun.
//
// Harus dipanggil di dalam transaksi milik caller. Di MySQL pembacaan
// maksimum mengunci baris (FOR UPDATE) seperti pada registrasi manual;
// unique index pada kolom agenda_number tetap menjadi penjaga terakhir
// bila dua registrasi lolos bersamaan.
func GenerateAgendaNumber(tx *gorm.DB) (string, error) {
	base := fmt.Sprintf("%s/%d/", AgendaPrefix, time.Now().Year())

	lastSeq, err := lastSequence(tx, &models.IncomingLetter{}, "agenda_number", base)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < numberingAttempts; attempt++ {
		cand := fmt.Sprintf("%s%06d", base, lastSeq+1+attempt)
		taken, err := numberExists(tx, &models.IncomingLetter{}, "agenda_number", cand)
		if err != nil {
			return "", err
		}
		if !taken {
			return cand, nil
		}
	}

	// Fallback darurat: suffix turunan jam (jelas non-sekuensial), hanya
	// agar penulisan tidak gagal pada kontensi patologis.
	return base + time.Now().Format("150405"), nil
}

// GenerateOutgoingNumber menghasilkan nomor surat keluar berikutnya untuk
// prefix jenis dokumen tertentu, format <PREFIX>/<TAHUN>/<5 digit>.
// Prefix kosong atau tak dikenal jatuh ke ST.
func GenerateOutgoingNumber(tx *gorm.DB, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !models.DocKind(prefix).IsValid() {
		prefix = string(models.DocKarta)
	}
	base := fmt.Sprintf("%s/%d/", prefix, time.Now().Year())

	lastSeq, err := lastSequence(tx, &models.OutgoingLetter{}, "number", base)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < numberingAttempts; attempt++ {
		cand := fmt.Sprintf("%s%05d", base, lastSeq+1+attempt)
		taken, err := numberExists(tx, &models.OutgoingLetter{}, "number", cand)
		if err != nil {
			return "", err
		}
		if !taken {
			return cand, nil
		}
	}

	return base + time.Now().Format("150405")[:5], nil
}

// lastSequence membaca nomor tertinggi untuk prefix+tahun dan mengambil
// urutan numeriknya. Ordering string aman karena urutan selalu zero-padded;
// nomor fallback yang tak bisa di-parse dihitung sebagai 0.
func lastSequence(tx *gorm.DB, model any, column, base string) (int, error) {
	q := tx.Model(model).
		Select(column).
		Where(column+" LIKE ?", base+"%").
		Order(column + " DESC").
		Limit(1)
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var last string
	if err := q.Scan(&last).Error; err != nil {
		return 0, err
	}
	if last == "" {
		return 0, nil
	}

	parts := strings.Split(last, "/")
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, nil
	}
	return seq, nil
}

func numberExists(tx *gorm.DB, model any, column, value string) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", value).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
