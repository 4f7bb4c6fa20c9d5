package utils

import (
	"strings"
	"time"
)

// RetentionYears memetakan kode klasifikasi ke masa retensi arsip (tahun).
var RetentionYears = map[string]int{
	"UM":  5,
	"TER": 10,
	"RHS": 20,
}

// DefaultRetentionYears dipakai bila kode tidak dikenal atau kosong.
const DefaultRetentionYears = 5

// ComputeRetentionUntil menghitung batas retensi arsip: tanggal mulai plus
// masa retensi kode klasifikasi. Murni, tanpa efek samping; pemanggil yang
// memutuskan kapan dan ke mana hasilnya disimpan.
func ComputeRetentionUntil(code string, start time.Time) time.Time {
	years, ok := RetentionYears[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		years = DefaultRetentionYears
	}
	return addYears(start, years)
}

// addYears menambah tahun kalender dengan mempertahankan bulan/hari.
// 29 Februari di tahun non-kabisat di-clamp ke 28 Februari, bukan
// dinormalisasi ke 1 Maret.
func addYears(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	y += years
	if m == time.February && d == 29 && !isLeapYear(y) {
		d = 28
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
