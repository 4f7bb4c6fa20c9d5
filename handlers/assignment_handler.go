package handlers

import (
	"errors"

	"github.com/Rjvaldo21/correspondence/dto/letters"
	"github.com/Rjvaldo21/correspondence/middleware"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/services"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AssignmentHandler struct {
	db     *gorm.DB
	dispos *services.DispositionService
}

func NewAssignmentHandler(db *gorm.DB, dispos *services.DispositionService) *AssignmentHandler {
	return &AssignmentHandler{db: db, dispos: dispos}
}

// MyAssignments - daftar tugas disposisi milik user login
func (h *AssignmentHandler) MyAssignments(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	tx := h.db.
		Preload("Disposition").
		Preload("Disposition.IncomingLetter").
		Where("assignee_id = ?", user.ID)
	if c.Query("pending") == "true" {
		tx = tx.Where("completed_at IS NULL")
	}

	var assignments []models.DispositionAssignment
	if err := tx.Order("id DESC").Find(&assignments).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat tugas disposisi")
	}

	responses := make([]letters.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, letters.AssignmentResponse{
			ID:          a.ID,
			AssigneeID:  a.AssigneeID,
			ReadAt:      a.ReadAt,
			CompletedAt: a.CompletedAt,
		})
	}
	return utils.OK(c, "tugas disposisi berhasil dimuat", responses)
}

// MarkRead - assignee menandai disposisi terbaca
func (h *AssignmentHandler) MarkRead(c *fiber.Ctx) error {
	return h.act(c, h.dispos.MarkRead, "Disposisi ditandai terbaca")
}

// MarkComplete - assignee menandai tugasnya selesai
func (h *AssignmentHandler) MarkComplete(c *fiber.Ctx) error {
	return h.act(c, h.dispos.MarkComplete, "Tugas disposisi selesai")
}

func (h *AssignmentHandler) act(c *fiber.Ctx, fn func(uint, *models.User) error, okMsg string) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	assignmentID, _ := c.ParamsInt("id")
	if err := fn(uint(assignmentID), user); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Tugas disposisi tidak ditemukan")
		}
		if errors.Is(err, services.ErrForbidden) {
			return utils.Forbidden(c, "Tugas ini bukan milik Anda")
		}
		return utils.InternalServerError(c, "Gagal memperbarui tugas disposisi")
	}
	return utils.OK(c, okMsg, nil)
}
