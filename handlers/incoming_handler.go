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

type IncomingHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
	incoming    *services.IncomingService
	dispos      *services.DispositionService
}

func NewIncomingHandler(db *gorm.DB, incoming *services.IncomingService, dispos *services.DispositionService) *IncomingHandler {
	return &IncomingHandler{
		db:          db,
		permService: services.NewPermissionService(db),
		incoming:    incoming,
		dispos:      dispos,
	}
}

// CreateIncoming - Sekretariat mencatat surat masuk; nomor agenda terbit
// di sini dan label menyusul otomatis
func (h *IncomingHandler) CreateIncoming(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.CreateIncomingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	canCreate, _ := h.permService.CanUserRegisterIncoming(user)
	if !canCreate {
		return utils.Forbidden(c, "Anda tidak memiliki izin mencatat surat masuk")
	}

	// Scan surat opsional (surat via email kadang hanya metadata dulu)
	scanKey := ""
	if fileHeader, err := c.FormFile("file"); err == nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".pdf" && ext != ".jpg" && ext != ".png" && ext != ".jpeg" {
			return utils.BadRequest(c, "Format file harus PDF atau Gambar", nil)
		}
		key := fmt.Sprintf("incoming/scans/%s%s", uuid.NewString(), ext)
		scanKey, err = storage.UploadFile(c.Context(), fileHeader, key)
		if err != nil {
			return utils.InternalServerError(c, "Gagal mengupload file ke server")
		}
	}

	letter := req.ToModel(user.ID, scanKey)

	if len(req.TagIDs) > 0 {
		var tags []models.ClassificationTag
		if err := h.db.Find(&tags, req.TagIDs).Error; err != nil {
			return utils.InternalServerError(c, "Gagal memuat tag klasifikasi")
		}
		letter.ClassificationTags = tags
	}

	if err := h.incoming.Register(c.Context(), &letter); err != nil {
		if errors.Is(err, services.ErrNumberConflict) {
			return utils.Conflict(c, "Nomor agenda bentrok, silakan coba lagi", nil)
		}
		return utils.InternalServerError(c, "Gagal mencatat surat masuk")
	}

	return utils.Created(c, "Surat masuk berhasil dicatat", letters.NewIncomingResponse(&letter))
}

// ListIncoming - filter status/prioritas/pencarian; surat RHS disaring
// untuk user tanpa akses
func (h *IncomingHandler) ListIncoming(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
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

	tx := h.db.Model(&models.IncomingLetter{}).Preload("ClassificationTags")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("status = ?", status)
	}
	if priority := strings.TrimSpace(c.Query("priority")); priority != "" {
		tx = tx.Where("priority = ?", priority)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			h.db.Where("subject LIKE ?", like).
				Or("origin LIKE ?", like).
				Or("agenda_number LIKE ?", like),
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menghitung surat")
	}

	var results []models.IncomingLetter
	if err := tx.Order("id DESC").Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat daftar surat")
	}

	responses := make([]letters.IncomingResponse, 0, len(results))
	for i := range results {
		if ok, _ := h.permService.CanUserViewIncoming(user, &results[i]); !ok {
			continue
		}
		AddPresignedURLsIncoming(&results[i])
		responses = append(responses, letters.NewIncomingResponse(&results[i]))
	}

	meta := utils.PaginationMeta{Page: page, Limit: limit, Total: total}
	return utils.PaginatedResponse(c, fiber.StatusOK, "surat masuk berhasil dimuat", responses, meta)
}

// GetIncoming - detail satu surat, gerbang RHS berlaku
func (h *IncomingHandler) GetIncoming(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetIncomingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canView, _ := h.permService.CanUserViewIncoming(user, letter)
	if !canView {
		return utils.Forbidden(c, "Anda tidak memiliki akses melihat surat ini")
	}

	AddPresignedURLsIncoming(letter)
	return utils.OK(c, "detail surat masuk", letters.NewIncomingResponse(letter))
}

// UpdateIncoming - edit metadata; nomor agenda dan kolom retensi tidak
// pernah tersentuh dari sini
func (h *IncomingHandler) UpdateIncoming(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	canEdit, _ := h.permService.CanUserRegisterIncoming(user)
	if !canEdit {
		return utils.Forbidden(c, "Anda tidak berhak mengedit surat masuk")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetIncomingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}
	if letter.IsArchived() {
		return utils.Conflict(c, "Surat terarsip tidak dapat diedit", nil)
	}

	var req letters.UpdateIncomingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	letters.ApplyUpdateIncoming(letter, &req)

	if fileHeader, err := c.FormFile("file"); err == nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".pdf" && ext != ".jpg" && ext != ".png" && ext != ".jpeg" {
			return utils.BadRequest(c, "Format file harus PDF atau Gambar", nil)
		}
		key := fmt.Sprintf("incoming/scans/%s%s", uuid.NewString(), ext)
		uploaded, err := storage.UploadFile(c.Context(), fileHeader, key)
		if err != nil {
			return utils.InternalServerError(c, "Gagal mengupload file revisi")
		}
		letter.ScanPDF = uploaded
	}

	if err := h.db.Save(letter).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memperbarui surat")
	}
	return utils.OK(c, "Surat masuk berhasil diperbarui", letters.NewIncomingResponse(letter))
}

// Dispose - Direktur menurunkan disposisi ke staf
func (h *IncomingHandler) Dispose(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetIncomingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canDispose, _ := h.permService.CanUserDispose(user, letter)
	if !canDispose {
		return utils.Forbidden(c, "Anda tidak berhak mendisposisikan surat ini")
	}

	var req letters.CreateDispositionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	dispo, err := h.dispos.Create(req.ToInput(letter.ID, user.ID))
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.BadRequest(c, "Validasi gagal", verr.Fields)
		}
		return utils.InternalServerError(c, "Gagal membuat disposisi")
	}

	return utils.Created(c, "Disposisi berhasil dibuat", letters.NewDispositionResponse(dispo))
}

// AddFollowUp - staf melampirkan dokumen tindak lanjut; mark_done sekalian
// menutup surat
func (h *IncomingHandler) AddFollowUp(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetIncomingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}
	if letter.IsArchived() {
		return utils.Conflict(c, "Surat terarsip tidak menerima tindak lanjut", nil)
	}

	var req letters.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	filePath := ""
	if fileHeader, err := c.FormFile("file"); err == nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".pdf" {
			return utils.BadRequest(c, "Dokumen tindak lanjut harus PDF", nil)
		}
		key := fmt.Sprintf("incoming/followups/%s%s", uuid.NewString(), ext)
		filePath, err = storage.UploadFile(c.Context(), fileHeader, key)
		if err != nil {
			return utils.InternalServerError(c, "Gagal mengupload dokumen")
		}
	}

	docType := models.DocNota
	if req.DocType != "" {
		docType = models.DocKind(req.DocType)
	}
	followUp := models.FollowUp{
		IncomingLetterID: letter.ID,
		DocType:          docType,
		Title:            strings.TrimSpace(req.Title),
		FilePath:         filePath,
		AuthorID:         &user.ID,
	}
	if err := h.db.Create(&followUp).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menyimpan tindak lanjut")
	}

	if req.MarkDone {
		if err := h.incoming.MarkDone(letter.ID); err != nil {
			return utils.InternalServerError(c, "Tindak lanjut tersimpan tapi status gagal diperbarui")
		}
	}

	return utils.Created(c, "Tindak lanjut berhasil disimpan", letters.NewFollowUpResponse(&followUp))
}

// MarkDone - menutup surat setelah seluruh tindak lanjut selesai
func (h *IncomingHandler) MarkDone(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	if err := h.incoming.MarkDone(uint(letterID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Surat tidak ditemukan")
		}
		return utils.InternalServerError(c, "Gagal memperbarui status surat")
	}
	return utils.OK(c, "Surat ditandai selesai", nil)
}

// Archive - sekretariat mengarsip surat selesai; retensi dihitung di sini
func (h *IncomingHandler) Archive(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	letterID, _ := c.ParamsInt("id")
	letter, err := h.permService.GetIncomingByID(uint(letterID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canArchive, _ := h.permService.CanUserArchiveIncoming(user, letter)
	if !canArchive {
		return utils.Forbidden(c, "Surat hanya bisa diarsip oleh sekretariat setelah selesai")
	}

	if err := h.incoming.Archive(letter.ID); err != nil {
		return utils.InternalServerError(c, "Gagal mengarsip surat")
	}

	updated, _ := h.permService.GetIncomingByID(letter.ID)
	return utils.OK(c, "Surat berhasil diarsip", letters.NewIncomingResponse(updated))
}

// ForceStatus - override status oleh admin
func (h *IncomingHandler) ForceStatus(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.ForceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	letterID, _ := c.ParamsInt("id")
	if err := h.incoming.ForceStatus(uint(letterID), models.IncomingStatus(req.Status)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Surat tidak ditemukan")
		}
		return utils.InternalServerError(c, "Gagal memaksa status surat")
	}
	return utils.OK(c, "Status surat diperbarui", nil)
}

// loadUser memuat user lengkap dengan grup; gerbang RHS butuh keanggotaan
// grup, bukan cuma claims token.
func (h *IncomingHandler) loadUser(c *fiber.Ctx) (*models.User, error) {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	var user models.User
	if err := h.db.Preload("Groups").First(&user, claims.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
