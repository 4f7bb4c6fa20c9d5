package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Rjvaldo21/correspondence/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB membuka database sqlite in-memory terisolasi per test dan
// memigrasi seluruh skema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.ClassificationTag{},
		&models.Attachment{},
		&models.IncomingLetter{},
		&models.OutgoingLetter{},
		&models.ReviewStep{},
		&models.Disposition{},
		&models.DispositionAssignment{},
		&models.FollowUp{},
		&models.ExpeditionRecord{},
		&models.DestructionRecord{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedIncoming(t *testing.T, db *gorm.DB, letter *models.IncomingLetter) *models.IncomingLetter {
	t.Helper()
	if letter.Origin == "" {
		letter.Origin = "Ministériu Edukasaun"
	}
	if letter.Subject == "" {
		letter.Subject = "Ofísiu teste"
	}
	if letter.Status == "" {
		letter.Status = models.IncomingRegistered
	}
	if err := db.Create(letter).Error; err != nil {
		t.Fatalf("seed incoming: %v", err)
	}
	return letter
}

func seedOutgoing(t *testing.T, db *gorm.DB, letter *models.OutgoingLetter) *models.OutgoingLetter {
	t.Helper()
	if letter.Subject == "" {
		letter.Subject = "Karta teste"
	}
	if letter.TemplateType == "" {
		letter.TemplateType = models.DocKarta
	}
	if letter.Status == "" {
		letter.Status = models.OutgoingDraft
	}
	if err := db.Create(letter).Error; err != nil {
		t.Fatalf("seed outgoing: %v", err)
	}
	return letter
}

func datePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }
