package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Rjvaldo21/correspondence/dto/letters"
	"github.com/Rjvaldo21/correspondence/middleware"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/services"
	"github.com/Rjvaldo21/correspondence/utils"
	"github.com/Rjvaldo21/correspondence/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutgoingHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
	outgoing    *services.OutgoingService
}

func NewOutgoingHandler(db *gorm.DB, outgoing *services.OutgoingService) *OutgoingHandler {
	return &OutgoingHandler{
		db:          db,
		permService: services.NewPermissionService(db),
		outgoing:    outgoing,
	}
}

// CreateOutgoing - konseptor membuat konsep surat keluar; nomor belum
// terbit sampai FINAL
func (h *OutgoingHandler) CreateOutgoing(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.CreateOutgoingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	letter := req.ToModel(user.ID)
	if err := h.db.Create(&letter).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menyimpan konsep surat")
	}

	return utils.Created(c, "Konsep surat keluar tersimpan", letters.NewOutgoingResponse(&letter))
}

// ListOutgoing - filter status/jenis/pencarian
func (h *OutgoingHandler) ListOutgoing(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	tx := h.db.Model(&models.OutgoingLetter{}).Preload("Reviews")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("status = ?", status)
	}
	if kind := strings.TrimSpace(c.Query("template_type")); kind != "" {
		tx = tx.Where("template_type = ?", kind)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			h.db.Where("subject LIKE ?", like).Or("number LIKE ?", like),
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menghitung surat")
	}

	var results []models.OutgoingLetter
	if err := tx.Order("id DESC").Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat daftar surat")
	}

	responses := make([]letters.OutgoingResponse, 0, len(results))
	for i := range results {
		AddPresignedURLsOutgoing(&results[i])
		responses = append(responses, letters.NewOutgoingResponse(&results[i]))
	}

	meta := utils.PaginationMeta{Page: page, Limit: limit, Total: total}
	return utils.PaginatedResponse(c, fiber.StatusOK, "surat keluar berhasil dimuat", responses, meta)
}

// GetOutgoing - detail beserta rantai review
func (h *OutgoingHandler) GetOutgoing(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetOutgoingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	AddPresignedURLsOutgoing(letter)
	return utils.OK(c, "detail surat keluar", letters.NewOutgoingResponse(letter))
}

// UpdateOutgoing - edit konsep selama masih draft/review
func (h *OutgoingHandler) UpdateOutgoing(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetOutgoingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canEdit, _ := h.permService.CanUserTransitionOutgoing(user, letter, false)
	if !canEdit {
		return utils.Forbidden(c, "Anda tidak berhak mengedit surat ini")
	}
	if letter.Status.Rank() > models.OutgoingReview.Rank() {
		return utils.Conflict(c, "Surat yang sudah disetujui tidak dapat diedit", nil)
	}

	var req letters.UpdateOutgoingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	letters.ApplyUpdateOutgoing(letter, &req)
	if err := h.db.Save(letter).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memperbarui surat")
	}
	return utils.OK(c, "Konsep surat keluar diperbarui", letters.NewOutgoingResponse(letter))
}

// Transition - perpindahan status; penolakan guard dikembalikan sebagai
// 409 dengan kode alasan supaya frontend bisa menjelaskan
func (h *OutgoingHandler) Transition(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetOutgoingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	var req letters.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	canMove, _ := h.permService.CanUserTransitionOutgoing(user, letter, req.Force)
	if !canMove {
		return utils.Forbidden(c, "Anda tidak berhak menggeser status surat ini")
	}

	updated, err := h.outgoing.Transition(c.Context(), letter.ID, models.OutgoingStatus(req.Status), req.Force)
	if err != nil {
		var gerr *services.GuardError
		if errors.As(err, &gerr) {
			return utils.Conflict(c, "Transisi ditolak", fiber.Map{"reason": gerr.Reason})
		}
		if errors.Is(err, services.ErrNumberConflict) {
			return utils.Conflict(c, "Nomor surat bentrok, silakan coba lagi", nil)
		}
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.BadRequest(c, "Validasi gagal", verr.Fields)
		}
		return utils.InternalServerError(c, "Gagal menggeser status surat")
	}

	return utils.OK(c, "Status surat diperbarui", letters.NewOutgoingResponse(updated))
}

// AddReview - menambah titik paraf
func (h *OutgoingHandler) AddReview(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetOutgoingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canEdit, _ := h.permService.CanUserTransitionOutgoing(user, letter, false)
	if !canEdit {
		return utils.Forbidden(c, "Anda tidak berhak mengatur review surat ini")
	}

	var req letters.ReviewStepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	step, err := h.outgoing.AddReviewStep(letter.ID, req.StepOrder, req.ReviewerID, req.Note)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.BadRequest(c, "Validasi gagal", verr.Fields)
		}
		return utils.InternalServerError(c, "Gagal menambah review")
	}

	return utils.Created(c, "Titik review ditambahkan", step)
}

// ApproveReview - reviewer menyetujui step miliknya
func (h *OutgoingHandler) ApproveReview(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	stepID, _ := c.ParamsInt("stepId")

	var req letters.ApproveReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	if err := h.outgoing.ApproveReview(uint(stepID), user, req.Note); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Review tidak ditemukan")
		}
		if errors.Is(err, services.ErrForbidden) {
			return utils.Forbidden(c, "Hanya reviewer yang ditunjuk dapat menyetujui")
		}
		return utils.InternalServerError(c, "Gagal menyimpan persetujuan")
	}
	return utils.OK(c, "Review disetujui", nil)
}

// UploadSignedPDF - sekretariat mengunggah PDF final bertanda tangan
func (h *OutgoingHandler) UploadSignedPDF(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetOutgoingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}
	if !letter.Status.NumberRequired() {
		return utils.Conflict(c, "PDF final hanya untuk surat yang sudah bernomor", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "File PDF wajib diunggah", nil)
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		return utils.BadRequest(c, "File harus PDF", nil)
	}

	key := fmt.Sprintf("outgoing/signed/%d_%s.pdf", letter.ID, uuid.NewString())
	uploaded, err := storage.UploadFile(c.Context(), fileHeader, key)
	if err != nil {
		return utils.InternalServerError(c, "Gagal mengupload PDF")
	}

	if err := h.db.Model(letter).Update("signed_pdf", uploaded).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menyimpan referensi PDF")
	}
	return utils.OK(c, "PDF final tersimpan", fiber.Map{"signed_pdf": uploaded})
}
