package letters

import (
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
)

func (r *CreateIncomingRequest) ToModel(userID uint, scanKey string) models.IncomingLetter {
	var originDate *time.Time
	if r.OriginDate != "" {
		if t, err := time.Parse("2006-01-02", r.OriginDate); err == nil {
			originDate = &t
		}
	}

	priority := models.PriorityBiasa
	if r.Priority != "" {
		priority = models.Priority(r.Priority)
	}

	via := models.ViaFisik
	if r.ReceivedVia != "" {
		via = models.ReceivedVia(r.ReceivedVia)
	}

	return models.IncomingLetter{
		Origin:       strings.TrimSpace(r.Origin),
		OriginNumber: strings.TrimSpace(r.OriginNumber),
		OriginDate:   originDate,
		Subject:      strings.TrimSpace(r.Subject),
		Priority:     priority,
		ReceivedVia:  via,
		ScanPDF:      scanKey,
		CreatedByID:  &userID,
	}
}

func ApplyUpdateIncoming(letter *models.IncomingLetter, req *UpdateIncomingRequest) {
	if letter == nil || req == nil {
		return
	}

	if req.Origin != nil {
		letter.Origin = strings.TrimSpace(*req.Origin)
	}
	if req.OriginNumber != nil {
		letter.OriginNumber = strings.TrimSpace(*req.OriginNumber)
	}
	if req.Subject != nil {
		letter.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Priority != nil {
		letter.Priority = models.Priority(*req.Priority)
	}
	if req.ReceivedVia != nil {
		letter.ReceivedVia = models.ReceivedVia(*req.ReceivedVia)
	}

	if req.OriginDate != nil && *req.OriginDate != "" {
		if t, err := time.Parse("2006-01-02", *req.OriginDate); err == nil {
			letter.OriginDate = &t
		}
	}
}
