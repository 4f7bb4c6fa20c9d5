package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/middleware"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/services"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ArchiveHandler mengelola catatan ekspedisi pengiriman dan berita acara
// pemusnahan arsip.
type ArchiveHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
}

func NewArchiveHandler(db *gorm.DB) *ArchiveHandler {
	return &ArchiveHandler{db: db, permService: services.NewPermissionService(db)}
}

type expeditionRequest struct {
	TargetKind  string `json:"target_kind" form:"target_kind"`
	LetterID    uint   `json:"letter_id" form:"letter_id"`
	Method      string `json:"method" form:"method"`
	Destination string `json:"destination" form:"destination"`
	ReceivedBy  string `json:"received_by" form:"received_by"`
}

// RecordExpedition - mencatat pengiriman surat (fisik atau email)
func (h *ArchiveHandler) RecordExpedition(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req expeditionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if strings.TrimSpace(req.Destination) == "" {
		return utils.BadRequest(c, "Validasi gagal", fiber.Map{"destination": "destination is required"})
	}

	method := models.ExpeditionEmail
	if req.Method != "" {
		method = models.ExpeditionMethod(req.Method)
	}

	record := models.ExpeditionRecord{
		TargetKind:  models.TargetKind(req.TargetKind),
		Method:      method,
		Destination: strings.TrimSpace(req.Destination),
		ReceivedBy:  strings.TrimSpace(req.ReceivedBy),
	}
	switch record.TargetKind {
	case models.TargetIncoming:
		record.IncomingLetterID = &req.LetterID
	case models.TargetOutgoing:
		record.OutgoingLetterID = &req.LetterID
	}

	if err := h.db.Create(&record).Error; err != nil {
		if errors.Is(err, models.ErrTargetMismatch) {
			return utils.BadRequest(c, "target_kind dan letter_id tidak konsisten", nil)
		}
		return utils.InternalServerError(c, "Gagal mencatat ekspedisi")
	}
	return utils.Created(c, "Ekspedisi tercatat", record)
}

type destructionRequest struct {
	TargetKind string `json:"target_kind" form:"target_kind"`
	LetterID   uint   `json:"letter_id" form:"letter_id"`
	Reason     string `json:"reason" form:"reason"`
}

// RecordDestruction - admin mendokumentasikan pemusnahan arsip yang masa
// retensinya sudah lewat; surat tidak dihapus dari database
func (h *ArchiveHandler) RecordDestruction(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	canRecord, _ := h.permService.CanUserRecordDestruction(user)
	if !canRecord {
		return utils.Forbidden(c, "Pemusnahan arsip hanya oleh admin")
	}

	var req destructionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	now := time.Now()
	record := models.DestructionRecord{
		TargetKind:   models.TargetKind(req.TargetKind),
		Reason:       strings.TrimSpace(req.Reason),
		ApprovedByID: &user.ID,
		DestroyedAt:  &now,
	}

	// Hanya arsip yang boleh dimusnahkan.
	switch record.TargetKind {
	case models.TargetIncoming:
		var letter models.IncomingLetter
		if err := h.db.First(&letter, "id = ?", req.LetterID).Error; err != nil {
			return utils.NotFound(c, "Surat tidak ditemukan")
		}
		if letter.Status != models.IncomingArchived {
			return utils.Conflict(c, "Surat belum diarsipkan", nil)
		}
		record.IncomingLetterID = &req.LetterID
	case models.TargetOutgoing:
		var letter models.OutgoingLetter
		if err := h.db.First(&letter, "id = ?", req.LetterID).Error; err != nil {
			return utils.NotFound(c, "Surat tidak ditemukan")
		}
		if letter.Status != models.OutgoingArchived {
			return utils.Conflict(c, "Surat belum diarsipkan", nil)
		}
		record.OutgoingLetterID = &req.LetterID
	}

	if err := h.db.Create(&record).Error; err != nil {
		if errors.Is(err, models.ErrTargetMismatch) {
			return utils.BadRequest(c, "target_kind dan letter_id tidak konsisten", nil)
		}
		return utils.InternalServerError(c, "Gagal mencatat pemusnahan")
	}
	return utils.Created(c, "Berita acara pemusnahan tercatat", record)
}

// ListExpeditions - riwayat ekspedisi, bisa difilter per surat
func (h *ArchiveHandler) ListExpeditions(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	tx := h.db.Model(&models.ExpeditionRecord{})
	tx = filterByTarget(tx, c)

	var records []models.ExpeditionRecord
	if err := tx.Order("id DESC").Find(&records).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat ekspedisi")
	}
	return utils.OK(c, "riwayat ekspedisi", records)
}

// ListDestructions - riwayat berita acara pemusnahan
func (h *ArchiveHandler) ListDestructions(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	canRecord, _ := h.permService.CanUserRecordDestruction(user)
	if !canRecord {
		return utils.Forbidden(c, "Hanya admin")
	}

	tx := h.db.Model(&models.DestructionRecord{})
	tx = filterByTarget(tx, c)

	var records []models.DestructionRecord
	if err := tx.Preload("ApprovedBy").Order("id DESC").Find(&records).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat berita acara")
	}
	return utils.OK(c, "riwayat pemusnahan", records)
}

func filterByTarget(tx *gorm.DB, c *fiber.Ctx) *gorm.DB {
	kind := strings.TrimSpace(c.Query("target_kind"))
	letterID := strings.TrimSpace(c.Query("letter_id"))
	if kind == "" || letterID == "" {
		return tx
	}
	switch models.TargetKind(kind) {
	case models.TargetIncoming:
		tx = tx.Where("target_kind = ? AND incoming_letter_id = ?", kind, letterID)
	case models.TargetOutgoing:
		tx = tx.Where("target_kind = ? AND outgoing_letter_id = ?", kind, letterID)
	}
	return tx
}

// ListExpired - daftar arsip yang masa retensinya sudah lewat (kandidat
// pemusnahan)
func (h *ArchiveHandler) ListExpired(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var results []models.IncomingLetter
	err := h.db.
		Where("status = ? AND retention_until IS NOT NULL AND retention_until <= ?",
			models.IncomingArchived, time.Now()).
		Order("retention_until").
		Find(&results).Error
	if err != nil {
		return utils.InternalServerError(c, "Gagal memuat arsip kedaluwarsa")
	}
	return utils.OK(c, "arsip melewati masa retensi", results)
}
