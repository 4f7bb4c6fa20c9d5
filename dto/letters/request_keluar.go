package letters

import (
	"strings"

	"github.com/Rjvaldo21/correspondence/models"
)

// CreateOutgoingRequest - req konsep surat keluar oleh konseptor
type CreateOutgoingRequest struct {
	TemplateType string `json:"template_type" form:"template_type"`
	Subject      string `json:"subject" form:"subject"`
	Body         string `json:"body" form:"body"`
}

// UpdateOutgoingRequest - req edit konsep; hanya draft/review yang boleh
// diedit, dan nomor surat tidak pernah ikut
type UpdateOutgoingRequest struct {
	TemplateType *string `json:"template_type" form:"template_type"`
	Subject      *string `json:"subject" form:"subject"`
	Body         *string `json:"body" form:"body"`
}

// TransitionRequest - req perpindahan status surat keluar
type TransitionRequest struct {
	Status string `json:"status" form:"status"`
	Force  bool   `json:"force" form:"force"`
}

// ReviewStepRequest - req penambahan titik paraf
type ReviewStepRequest struct {
	StepOrder  uint   `json:"step_order" form:"step_order"`
	ReviewerID uint   `json:"reviewer_id" form:"reviewer_id"`
	Note       string `json:"note" form:"note"`
}

// ApproveReviewRequest - req persetujuan satu titik paraf
type ApproveReviewRequest struct {
	Note string `json:"note" form:"note"`
}

func (r *CreateOutgoingRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Subject) == "" {
		errors["subject"] = "subject is required"
	}
	if r.TemplateType != "" && !models.DocKind(r.TemplateType).IsValid() {
		errors["template_type"] = "template_type must be ND, UD, ST, MM, or LN"
	}

	return errors
}

func (r *UpdateOutgoingRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.TemplateType != nil && !models.DocKind(*r.TemplateType).IsValid() {
		errors["template_type"] = "template_type must be ND, UD, ST, MM, or LN"
	}
	return errors
}

func (r *TransitionRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !models.OutgoingStatus(r.Status).IsValid() {
		errors["status"] = "unknown status"
	}
	return errors
}

func (r *ReviewStepRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.StepOrder == 0 {
		errors["step_order"] = "step_order must be at least 1"
	}
	if r.ReviewerID == 0 {
		errors["reviewer_id"] = "reviewer_id is required"
	}
	return errors
}
