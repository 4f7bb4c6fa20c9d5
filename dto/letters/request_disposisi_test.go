package letters

import (
	"testing"
	"time"
)

func TestToInputParsesDueDateInLocalZone(t *testing.T) {
	day := time.Now().Format("2006-01-02")
	req := CreateDispositionRequest{
		DueDate:     day,
		AssigneeIDs: []uint{7},
	}

	in := req.ToInput(1, 2)
	if in.DueDate == nil {
		t.Fatal("due date tidak terparse")
	}

	now := time.Now()
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !in.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want tengah malam lokal %v", in.DueDate, want)
	}
}

func TestValidateRejectsMalformedDueDate(t *testing.T) {
	req := CreateDispositionRequest{
		DueDate:     "31-12-2026",
		AssigneeIDs: []uint{7},
	}
	if errs := req.Validate(); errs["due_date"] == "" {
		t.Fatalf("errs = %v, want due_date", errs)
	}
}
