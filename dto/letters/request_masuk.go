package letters

import (
	"strings"

	"github.com/Rjvaldo21/correspondence/models"
)

// CreateIncomingRequest - req pencatatan surat masuk oleh sekretariat
type CreateIncomingRequest struct {
	Origin       string `json:"origin" form:"origin"`
	OriginNumber string `json:"origin_number" form:"origin_number"`
	OriginDate   string `json:"origin_date" form:"origin_date"` // YYYY-MM-DD
	Subject      string `json:"subject" form:"subject"`
	Priority     string `json:"priority" form:"priority"`
	ReceivedVia  string `json:"received_via" form:"received_via"`
	TagIDs       []uint `json:"tag_ids" form:"tag_ids"`

	// Note: ScanPDF di-handle handler (multipart upload ke S3)
}

// UpdateIncomingRequest - req edit metadata (nomor agenda tidak pernah
// ikut; sekali terbit permanen)
type UpdateIncomingRequest struct {
	Origin       *string `json:"origin" form:"origin"`
	OriginNumber *string `json:"origin_number" form:"origin_number"`
	OriginDate   *string `json:"origin_date" form:"origin_date"`
	Subject      *string `json:"subject" form:"subject"`
	Priority     *string `json:"priority" form:"priority"`
	ReceivedVia  *string `json:"received_via" form:"received_via"`
}

// ForceStatusRequest - override status oleh admin
type ForceStatusRequest struct {
	Status string `json:"status" form:"status"`
}

func (r *CreateIncomingRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Origin) == "" {
		errors["origin"] = "origin is required"
	}
	if strings.TrimSpace(r.Subject) == "" {
		errors["subject"] = "subject is required"
	}
	if r.Priority != "" && !models.Priority(r.Priority).IsValid() {
		errors["priority"] = "priority must be B, S, or SS"
	}
	if r.ReceivedVia != "" && !isValidReceivedVia(r.ReceivedVia) {
		errors["received_via"] = "received_via must be fisik or email"
	}

	return errors
}

func (r *UpdateIncomingRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Priority != nil && !models.Priority(*r.Priority).IsValid() {
		errors["priority"] = "priority must be B, S, or SS"
	}
	if r.ReceivedVia != nil && !isValidReceivedVia(*r.ReceivedVia) {
		errors["received_via"] = "received_via must be fisik or email"
	}
	return errors
}

func (r *ForceStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !models.IncomingStatus(r.Status).IsValid() {
		errors["status"] = "unknown status"
	}
	return errors
}

func isValidReceivedVia(v string) bool {
	switch models.ReceivedVia(v) {
	case models.ViaFisik, models.ViaEmail:
		return true
	default:
		return false
	}
}
