package letters

import (
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/services"
)

// CreateDispositionRequest - req disposisi oleh direktur
type CreateDispositionRequest struct {
	Note          string `json:"note" form:"note"`
	DueDate       string `json:"due_date" form:"due_date"` // YYYY-MM-DD
	AllowParallel *bool  `json:"allow_parallel" form:"allow_parallel"`
	ParentID      *uint  `json:"parent_id" form:"parent_id"`
	AssigneeIDs   []uint `json:"assignee_ids" form:"assignee_ids"`
}

// FollowUpRequest - req tindak lanjut oleh staf pelaksana
type FollowUpRequest struct {
	DocType  string `json:"doc_type" form:"doc_type"`
	Title    string `json:"title" form:"title"`
	MarkDone bool   `json:"mark_done" form:"mark_done"`
}

func (r *CreateDispositionRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.AssigneeIDs) == 0 {
		errors["assignee_ids"] = "at least one assignee is required"
	}
	if r.DueDate != "" {
		if _, err := time.Parse("2006-01-02", r.DueDate); err != nil {
			errors["due_date"] = "due_date must be YYYY-MM-DD"
		}
	}

	return errors
}

func (r *CreateDispositionRequest) ToInput(letterID, senderID uint) services.CreateDispositionInput {
	var due *time.Time
	if r.DueDate != "" {
		// Zona lokal, bukan UTC: batas "hari ini" di layanan juga dihitung
		// dalam zona lokal.
		if t, err := time.ParseInLocation("2006-01-02", r.DueDate, time.Local); err == nil {
			due = &t
		}
	}

	allowParallel := true
	if r.AllowParallel != nil {
		allowParallel = *r.AllowParallel
	}

	return services.CreateDispositionInput{
		LetterID:      letterID,
		SenderID:      senderID,
		Note:          strings.TrimSpace(r.Note),
		DueDate:       due,
		AllowParallel: allowParallel,
		ParentID:      r.ParentID,
		AssigneeIDs:   r.AssigneeIDs,
	}
}

func (r *FollowUpRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "title is required"
	}
	if r.DocType != "" && !models.DocKind(r.DocType).IsValid() {
		errors["doc_type"] = "doc_type must be ND, UD, ST, MM, or LN"
	}

	return errors
}
