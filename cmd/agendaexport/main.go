package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Rjvaldo21/correspondence/config"
	"github.com/Rjvaldo21/correspondence/models"

	"gorm.io/gorm"
)

// agendaexport menulis buku agenda satu bulan penuh sebagai CSV, untuk
// kebutuhan pelaporan berkala tanpa lewat API.
//
//	agendaexport -kind incoming -month 2026-08 -out agenda_masuk.csv
func main() {
	kind := flag.String("kind", "incoming", "incoming atau outgoing")
	month := flag.String("month", time.Now().Format("2006-01"), "bulan laporan (YYYY-MM)")
	out := flag.String("out", "", "file tujuan (default stdout)")
	flag.Parse()

	start, err := time.Parse("2006-01", *month)
	if err != nil {
		log.Fatalf("format bulan tidak valid: %v", err)
	}
	end := start.AddDate(0, 1, 0)

	db := config.ConnectDB()

	dest := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("gagal membuat file: %v", err)
		}
		defer f.Close()
		dest = f
	}

	w := csv.NewWriter(dest)
	var rows int
	switch *kind {
	case "incoming":
		rows, err = writeIncoming(db, w, start, end)
	case "outgoing":
		rows, err = writeOutgoing(db, w, start, end)
	default:
		log.Fatalf("kind tidak dikenal: %s", *kind)
	}
	if err != nil {
		log.Fatalf("ekspor gagal: %v", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("gagal menulis CSV: %v", err)
	}
	fmt.Fprintf(os.Stderr, "%d baris untuk %s\n", rows, *month)
}

func writeIncoming(db *gorm.DB, w *csv.Writer, start, end time.Time) (int, error) {
	var letters []models.IncomingLetter
	err := db.Where("created_at >= ? AND created_at < ?", start, end).
		Order("id").Find(&letters).Error
	if err != nil {
		return 0, err
	}

	if err := w.Write([]string{"Agenda", "Subject", "Origin", "Priority", "Status", "Created"}); err != nil {
		return 0, err
	}
	for _, l := range letters {
		err := w.Write([]string{
			l.AgendaNumber,
			l.Subject,
			l.Origin,
			string(l.Priority),
			string(l.Status),
			l.CreatedAt.Format("2006-01-02"),
		})
		if err != nil {
			return 0, err
		}
	}
	return len(letters), nil
}

func writeOutgoing(db *gorm.DB, w *csv.Writer, start, end time.Time) (int, error) {
	var letters []models.OutgoingLetter
	err := db.Where("created_at >= ? AND created_at < ?", start, end).
		Order("id").Find(&letters).Error
	if err != nil {
		return 0, err
	}

	if err := w.Write([]string{"Number", "Subject", "Template", "Status", "Created"}); err != nil {
		return 0, err
	}
	for _, l := range letters {
		err := w.Write([]string{
			l.NumberValue(),
			l.Subject,
			string(l.TemplateType),
			string(l.Status),
			l.CreatedAt.Format("2006-01-02"),
		})
		if err != nil {
			return 0, err
		}
	}
	return len(letters), nil
}
