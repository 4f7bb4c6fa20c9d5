package main

import (
	"log"

	"github.com/Rjvaldo21/correspondence/config"
	"github.com/Rjvaldo21/correspondence/models"

	"gorm.io/gorm"
)

func main() {
	db := config.ConnectDB()
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("✅ Migration completed")
}

// seed mengisi data rujukan yang wajib ada: group akses rahasia dan
// tag klasifikasi retensi.
func seed(db *gorm.DB) error {
	groups := []string{models.GroupRHSAccess}
	for _, name := range groups {
		var g models.Group
		if err := db.Where("name = ?", name).FirstOrCreate(&g, models.Group{Name: name}).Error; err != nil {
			return err
		}
	}

	tags := []string{"UM", "TER", "RHS"}
	for _, name := range tags {
		var t models.ClassificationTag
		err := db.Where("name = ?", name).FirstOrCreate(&t, models.ClassificationTag{Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
