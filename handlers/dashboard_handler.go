package handlers

import (
	"time"

	"github.com/Rjvaldo21/correspondence/middleware"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Stats - ringkasan beban kerja untuk layar utama aplikasi
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var incomingByStatus []statusCount
	if err := h.db.Model(&models.IncomingLetter{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&incomingByStatus).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat statistik")
	}

	var outgoingByStatus []statusCount
	if err := h.db.Model(&models.OutgoingLetter{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&outgoingByStatus).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat statistik")
	}

	var myPending int64
	if err := h.db.Model(&models.DispositionAssignment{}).
		Where("assignee_id = ? AND completed_at IS NULL", user.ID).
		Count(&myPending).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat statistik")
	}

	var overdue int64
	if err := h.db.Model(&models.Disposition{}).
		Joins("JOIN disposition_assignments a ON a.disposition_id = dispositions.id").
		Where("dispositions.due_date IS NOT NULL AND dispositions.due_date <= ? AND a.completed_at IS NULL", time.Now()).
		Distinct("dispositions.id").
		Count(&overdue).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat statistik")
	}

	return utils.OK(c, "statistik dashboard", fiber.Map{
		"incoming_by_status":   incomingByStatus,
		"outgoing_by_status":   outgoingByStatus,
		"my_pending_tasks":     myPending,
		"overdue_dispositions": overdue,
	})
}
