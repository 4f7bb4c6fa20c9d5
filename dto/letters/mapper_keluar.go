package letters

import (
	"strings"

	"github.com/Rjvaldo21/correspondence/models"
)

func (r *CreateOutgoingRequest) ToModel(userID uint) models.OutgoingLetter {
	kind := models.DocKarta
	if r.TemplateType != "" {
		kind = models.DocKind(r.TemplateType)
	}

	return models.OutgoingLetter{
		TemplateType: kind,
		Subject:      strings.TrimSpace(r.Subject),
		Body:         r.Body,
		Status:       models.OutgoingDraft,
		CreatedByID:  &userID,
	}
}

func ApplyUpdateOutgoing(letter *models.OutgoingLetter, req *UpdateOutgoingRequest) {
	if letter == nil || req == nil {
		return
	}

	if req.TemplateType != nil {
		letter.TemplateType = models.DocKind(*req.TemplateType)
	}
	if req.Subject != nil {
		letter.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Body != nil {
		letter.Body = *req.Body
	}
}
