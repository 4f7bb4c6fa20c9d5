package utils

import (
	"testing"
	"time"
)

func TestComputeRetentionUntilPerClass(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		code string
		want time.Time
	}{
		{"UM", time.Date(2029, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"TER", time.Date(2034, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"RHS", time.Date(2044, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"rhs", time.Date(2044, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{" ter ", time.Date(2034, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"UNKNOWN", time.Date(2029, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"", time.Date(2029, time.January, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := ComputeRetentionUntil(c.code, start)
		if !got.Equal(c.want) {
			t.Errorf("ComputeRetentionUntil(%q) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestComputeRetentionUntilLeapDayClamp(t *testing.T) {
	// 2024-02-29 + 5 tahun: 2029 bukan kabisat, clamp ke 28 Februari.
	start := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	got := ComputeRetentionUntil("UM", start)
	want := time.Date(2029, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// RHS dari 2024-02-29 jatuh di 2044 yang kabisat: tetap 29 Februari.
	got = ComputeRetentionUntil("RHS", start)
	want = time.Date(2044, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
