package routes

import (
	"github.com/Rjvaldo21/correspondence/handlers"
	"github.com/Rjvaldo21/correspondence/middleware"
	"github.com/Rjvaldo21/correspondence/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Register memasang seluruh route aplikasi pada fiber app.
func Register(app *fiber.App, db *gorm.DB, labels *services.LabelService) {
	incomingSvc := services.NewIncomingService(db, labels)
	outgoingSvc := services.NewOutgoingService(db, labels)
	disposSvc := services.NewDispositionService(db)
	verifySvc := services.NewVerifyService(db)

	authHandler := handlers.NewAuthHandler(db)
	adminHandler := handlers.NewAdminUserHandler(db)
	incomingHandler := handlers.NewIncomingHandler(db, incomingSvc, disposSvc)
	outgoingHandler := handlers.NewOutgoingHandler(db, outgoingSvc)
	assignmentHandler := handlers.NewAssignmentHandler(db, disposSvc)
	archiveHandler := handlers.NewArchiveHandler(db)
	exportHandler := handlers.NewExportHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	verifyHandler := handlers.NewVerifyHandler(verifySvc)

	// Verifikasi publik, tanpa auth. Wildcard karena kode dokumen
	// mengandung garis miring (AGD/2026/000001).
	app.Get("/verify/*", verifyHandler.Lookup)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/refresh", authHandler.Refresh)
	api.Post("/auth/forgot-password", authHandler.RequestPasswordReset)
	api.Post("/auth/reset-password", authHandler.ResetPassword)

	// Semua route di bawah ini butuh JWT
	auth := api.Use(middleware.RequireAuth())

	// Surat masuk
	auth.Post("/incoming", middleware.RequireSekretariat(), incomingHandler.CreateIncoming)
	auth.Get("/incoming", incomingHandler.ListIncoming)
	auth.Get("/incoming/:id", incomingHandler.GetIncoming)
	auth.Put("/incoming/:id", middleware.RequireSekretariat(), incomingHandler.UpdateIncoming)
	auth.Post("/incoming/:id/dispositions", middleware.RequireDirektur(), incomingHandler.Dispose)
	auth.Post("/incoming/:id/followups", incomingHandler.AddFollowUp)
	auth.Post("/incoming/:id/done", incomingHandler.MarkDone)
	auth.Post("/incoming/:id/archive", middleware.RequireSekretariat(), incomingHandler.Archive)
	auth.Post("/incoming/:id/force-status", middleware.RequireAdmin(), incomingHandler.ForceStatus)

	// Surat keluar
	auth.Post("/outgoing", outgoingHandler.CreateOutgoing)
	auth.Get("/outgoing", outgoingHandler.ListOutgoing)
	auth.Get("/outgoing/:id", outgoingHandler.GetOutgoing)
	auth.Put("/outgoing/:id", outgoingHandler.UpdateOutgoing)
	auth.Post("/outgoing/:id/status", outgoingHandler.Transition)
	auth.Post("/outgoing/:id/reviews", outgoingHandler.AddReview)
	auth.Post("/outgoing/:id/reviews/:stepId/approve", outgoingHandler.ApproveReview)
	auth.Post("/outgoing/:id/signed-pdf", outgoingHandler.UploadSignedPDF)

	// Disposisi saya
	auth.Get("/assignments/me", assignmentHandler.MyAssignments)
	auth.Post("/assignments/:id/read", assignmentHandler.MarkRead)
	auth.Post("/assignments/:id/complete", assignmentHandler.MarkComplete)

	// Ekspedisi dan pemusnahan arsip
	auth.Post("/expeditions", middleware.RequireSekretariat(), archiveHandler.RecordExpedition)
	auth.Get("/expeditions", archiveHandler.ListExpeditions) // ?target_kind=&letter_id=
	auth.Get("/archives/expired", middleware.RequireSekretariat(), archiveHandler.ListExpired)
	auth.Post("/archives/destructions", middleware.RequireAdmin(), archiveHandler.RecordDestruction)
	auth.Get("/archives/destructions", middleware.RequireAdmin(), archiveHandler.ListDestructions)

	// Laporan
	auth.Get("/exports/incoming", middleware.RequireSekretariat(), exportHandler.ExportIncomingCSV)
	auth.Get("/exports/outgoing", middleware.RequireSekretariat(), exportHandler.ExportOutgoingCSV)
	auth.Get("/dashboard/stats", dashboardHandler.Stats)

	// ----- ADMIN USERS CRUD -----
	admin := auth.Group("/admin", middleware.RequireAdmin())
	admin.Post("/users", adminHandler.AdminCreateUser)
	admin.Get("/users", adminHandler.AdminListUsers) // ?page=&limit=&role=&q=
	admin.Get("/users/:id", adminHandler.AdminGetUserByID)
	admin.Put("/users/:id", adminHandler.AdminUpdateUser)
	admin.Delete("/users/:id", adminHandler.AdminDeleteUser)
}
