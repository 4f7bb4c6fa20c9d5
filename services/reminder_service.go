package services

import (
	"log"
	"time"

	"github.com/Rjvaldo21/correspondence/utils/mailer"
)

// ReminderMailer mengirim email pengingat; dipisah interface supaya
// service bisa diuji tanpa SMTP sungguhan.
type ReminderMailer interface {
	SendDispositionReminder(toEmail, name string, items []mailer.ReminderItem) error
}

// ReminderService menjalankan pengingat SLA disposisi: satu email per
// assignee berisi semua disposisi yang sudah lewat tenggat.
type ReminderService struct {
	dispos *DispositionService
	mail   ReminderMailer
}

func NewReminderService(dispos *DispositionService, mail ReminderMailer) *ReminderService {
	return &ReminderService{dispos: dispos, mail: mail}
}

// Run mengambil disposisi lewat tenggat per ref, mengelompokkan per
// assignee, lalu mengirim email. Kegagalan kirim ke satu penerima tidak
// menggagalkan penerima lain. Mengembalikan jumlah email terkirim.
func (s *ReminderService) Run(ref time.Time) (int, error) {
	overdue, err := s.dispos.Overdue(ref)
	if err != nil {
		return 0, err
	}

	type recipient struct {
		email string
		name  string
		items []mailer.ReminderItem
	}
	byAssignee := map[uint]*recipient{}
	var order []uint

	for _, d := range overdue {
		item := mailer.ReminderItem{}
		if d.IncomingLetter != nil {
			item.AgendaNumber = d.IncomingLetter.AgendaNumber
			item.Subject = d.IncomingLetter.Subject
		}
		if d.DueDate != nil {
			item.DueDate = *d.DueDate
		}
		for _, a := range d.Assignments {
			if a.Assignee == nil {
				continue
			}
			r, ok := byAssignee[a.AssigneeID]
			if !ok {
				r = &recipient{email: a.Assignee.Email, name: a.Assignee.FullName()}
				byAssignee[a.AssigneeID] = r
				order = append(order, a.AssigneeID)
			}
			r.items = append(r.items, item)
		}
	}

	sent := 0
	for _, id := range order {
		r := byAssignee[id]
		if r.email == "" {
			continue
		}
		if err := s.mail.SendDispositionReminder(r.email, r.name, r.items); err != nil {
			log.Printf("reminder: gagal kirim ke %s: %v", r.email, err)
			continue
		}
		sent++
	}
	return sent, nil
}
