package letters

import (
	"time"

	"github.com/Rjvaldo21/correspondence/models"
)

type IncomingResponse struct {
	ID           uint               `json:"id"`
	AgendaNumber string             `json:"agenda_number"`
	Origin       string             `json:"origin"`
	OriginNumber string             `json:"origin_number"`
	OriginDate   *time.Time         `json:"origin_date"`
	Subject      string             `json:"subject"`
	Priority     models.Priority    `json:"priority"`
	PriorityName string             `json:"priority_name"`
	ReceivedVia  models.ReceivedVia `json:"received_via"`

	Status     models.IncomingStatus `json:"status"`
	StatusName string                `json:"status_name"`

	ScanPDF      string `json:"scan_pdf"`
	QRImage      string `json:"qr_image"`
	BarcodeImage string `json:"barcode_image"`

	Tags []string `json:"tags"`

	RetentionClass string     `json:"retention_class,omitempty"`
	RetentionUntil *time.Time `json:"retention_until,omitempty"`
	DisposedAt     *time.Time `json:"disposed_at,omitempty"`

	CreatedByID *uint     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewIncomingResponse(letter *models.IncomingLetter) IncomingResponse {
	if letter == nil {
		return IncomingResponse{}
	}

	tags := make([]string, 0, len(letter.ClassificationTags))
	for _, t := range letter.ClassificationTags {
		tags = append(tags, t.Name)
	}

	return IncomingResponse{
		ID:             letter.ID,
		AgendaNumber:   letter.AgendaNumber,
		Origin:         letter.Origin,
		OriginNumber:   letter.OriginNumber,
		OriginDate:     letter.OriginDate,
		Subject:        letter.Subject,
		Priority:       letter.Priority,
		PriorityName:   letter.Priority.Label(),
		ReceivedVia:    letter.ReceivedVia,
		Status:         letter.Status,
		StatusName:     letter.Status.Label(),
		ScanPDF:        letter.ScanPDF,
		QRImage:        letter.QRImage,
		BarcodeImage:   letter.BarcodeImage,
		Tags:           tags,
		RetentionClass: letter.RetentionClass,
		RetentionUntil: letter.RetentionUntil,
		DisposedAt:     letter.DisposedAt,
		CreatedByID:    letter.CreatedByID,
		CreatedAt:      letter.CreatedAt,
		UpdatedAt:      letter.UpdatedAt,
	}
}

type OutgoingResponse struct {
	ID           uint           `json:"id"`
	Number       string         `json:"number"`
	TemplateType models.DocKind `json:"template_type"`
	TemplateName string         `json:"template_name"`
	Subject      string         `json:"subject"`
	Body         string         `json:"body,omitempty"`

	Status     models.OutgoingStatus `json:"status"`
	StatusName string                `json:"status_name"`

	SignedPDF string `json:"signed_pdf"`
	QRImage   string `json:"qr_image"`

	Reviews []ReviewStepResponse `json:"reviews"`

	CreatedByID *uint     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReviewStepResponse struct {
	ID         uint       `json:"id"`
	StepOrder  uint       `json:"step_order"`
	ReviewerID uint       `json:"reviewer_id"`
	ApprovedAt *time.Time `json:"approved_at"`
	Note       string     `json:"note"`
}

func NewOutgoingResponse(letter *models.OutgoingLetter) OutgoingResponse {
	if letter == nil {
		return OutgoingResponse{}
	}

	reviews := make([]ReviewStepResponse, 0, len(letter.Reviews))
	for _, r := range letter.Reviews {
		reviews = append(reviews, ReviewStepResponse{
			ID:         r.ID,
			StepOrder:  r.StepOrder,
			ReviewerID: r.ReviewerID,
			ApprovedAt: r.ApprovedAt,
			Note:       r.Note,
		})
	}

	return OutgoingResponse{
		ID:           letter.ID,
		Number:       letter.NumberValue(),
		TemplateType: letter.TemplateType,
		TemplateName: letter.TemplateType.Label(),
		Subject:      letter.Subject,
		Body:         letter.Body,
		Status:       letter.Status,
		StatusName:   letter.Status.Label(),
		SignedPDF:    letter.SignedPDF,
		QRImage:      letter.QRImage,
		Reviews:      reviews,
		CreatedByID:  letter.CreatedByID,
		CreatedAt:    letter.CreatedAt,
		UpdatedAt:    letter.UpdatedAt,
	}
}

type DispositionResponse struct {
	ID            uint                 `json:"id"`
	LetterID      uint                 `json:"letter_id"`
	SenderID      *uint                `json:"sender_id"`
	Note          string               `json:"note"`
	DueDate       *time.Time           `json:"due_date"`
	AllowParallel bool                 `json:"allow_parallel"`
	ParentID      *uint                `json:"parent_id"`
	Assignments   []AssignmentResponse `json:"assignments"`
	CreatedAt     time.Time            `json:"created_at"`
}

type AssignmentResponse struct {
	ID          uint       `json:"id"`
	AssigneeID  uint       `json:"assignee_id"`
	ReadAt      *time.Time `json:"read_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func NewDispositionResponse(d *models.Disposition) DispositionResponse {
	if d == nil {
		return DispositionResponse{}
	}

	assignments := make([]AssignmentResponse, 0, len(d.Assignments))
	for _, a := range d.Assignments {
		assignments = append(assignments, AssignmentResponse{
			ID:          a.ID,
			AssigneeID:  a.AssigneeID,
			ReadAt:      a.ReadAt,
			CompletedAt: a.CompletedAt,
		})
	}

	return DispositionResponse{
		ID:            d.ID,
		LetterID:      d.IncomingLetterID,
		SenderID:      d.SenderID,
		Note:          d.Note,
		DueDate:       d.DueDate,
		AllowParallel: d.AllowParallel,
		ParentID:      d.ParentID,
		Assignments:   assignments,
		CreatedAt:     d.CreatedAt,
	}
}

type FollowUpResponse struct {
	ID        uint           `json:"id"`
	LetterID  uint           `json:"letter_id"`
	DocType   models.DocKind `json:"doc_type"`
	Title     string         `json:"title"`
	FilePath  string         `json:"file_path"`
	AuthorID  *uint          `json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewFollowUpResponse(f *models.FollowUp) FollowUpResponse {
	if f == nil {
		return FollowUpResponse{}
	}
	return FollowUpResponse{
		ID:        f.ID,
		LetterID:  f.IncomingLetterID,
		DocType:   f.DocType,
		Title:     f.Title,
		FilePath:  f.FilePath,
		AuthorID:  f.AuthorID,
		CreatedAt: f.CreatedAt,
	}
}
