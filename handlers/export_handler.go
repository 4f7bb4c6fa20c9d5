package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/middleware"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ExportHandler struct {
	db *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

// ExportIncomingCSV - buku agenda surat masuk sebagai CSV; filter opsional
// status dan rentang created_at (from/to, YYYY-MM-DD)
func (h *ExportHandler) ExportIncomingCSV(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	tx := h.db.Model(&models.IncomingLetter{})
	tx = applyExportFilters(tx, c)

	var results []models.IncomingLetter
	if err := tx.Order("id").Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat surat untuk ekspor")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Agenda", "Subject", "Origin", "Priority", "Status", "Created"})
	for _, l := range results {
		_ = w.Write([]string{
			l.AgendaNumber,
			l.Subject,
			l.Origin,
			string(l.Priority),
			string(l.Status),
			l.CreatedAt.Format("2006-01-02"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return utils.InternalServerError(c, "Gagal menulis CSV")
	}

	return sendCSV(c, "surat_masuk", buf.Bytes())
}

// ExportOutgoingCSV - buku agenda surat keluar sebagai CSV
func (h *ExportHandler) ExportOutgoingCSV(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	tx := h.db.Model(&models.OutgoingLetter{})
	tx = applyExportFilters(tx, c)

	var results []models.OutgoingLetter
	if err := tx.Order("id").Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memuat surat untuk ekspor")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Number", "Subject", "Template", "Status", "Created"})
	for _, l := range results {
		_ = w.Write([]string{
			l.NumberValue(),
			l.Subject,
			string(l.TemplateType),
			string(l.Status),
			l.CreatedAt.Format("2006-01-02"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return utils.InternalServerError(c, "Gagal menulis CSV")
	}

	return sendCSV(c, "surat_keluar", buf.Bytes())
}

func applyExportFilters(tx *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("status = ?", status)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			tx = tx.Where("created_at >= ?", t)
		}
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			tx = tx.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	return tx
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
