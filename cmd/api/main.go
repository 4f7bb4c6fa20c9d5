package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Rjvaldo21/correspondence/config"
	"github.com/Rjvaldo21/correspondence/routes"
	"github.com/Rjvaldo21/correspondence/services"
	"github.com/Rjvaldo21/correspondence/utils/fcm"
	"github.com/Rjvaldo21/correspondence/utils/mailer"
	"github.com/Rjvaldo21/correspondence/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db := config.ConnectDB()
	storage.InitS3Client()

	ctx := context.Background()
	if err := fcm.Init(ctx); err != nil {
		log.Fatalf("fcm init failed: %v", err)
	}
	go fcm.StartNotifierConsumer(ctx)

	labels := services.NewLabelService(db,
		services.BlobStoreFunc(storage.UploadBytes), config.VerifyURL)

	// Pengingat disposisi jatuh tempo, tiap hari kerja pagi.
	dispos := services.NewDispositionService(db)
	mailClient := mailer.NewClient(config.LoadEmailConfig())
	reminder := services.NewReminderService(dispos, mailClient)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 7 * * 1-5", func() {
		sent, err := reminder.Run(time.Now())
		if err != nil {
			log.Printf("reminder run gagal: %v", err)
			return
		}
		log.Printf("reminder terkirim ke %d penerima", sent)
	}); err != nil {
		log.Fatalf("cron schedule failed: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024,
	})

	routes.Register(app, db, labels)

	addr := ":" + port()
	log.Println("🚀 API running on", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}

func port() string {
	if p := os.Getenv("APP_PORT"); p != "" {
		return p
	}
	return "8080"
}
