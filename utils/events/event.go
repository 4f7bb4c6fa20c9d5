package events

import "github.com/Rjvaldo21/correspondence/models"

// LetterEventType mendefinisikan jenis event siklus hidup dokumen.
type LetterEventType string

const (
	// IncomingRegistered dipublikasikan saat surat masuk selesai dicatat
	// dan mendapat nomor agenda.
	IncomingRegistered LetterEventType = "IncomingRegistered"

	// IncomingStatusMoved dipublikasikan saat status surat masuk berubah
	// (disposisi, selesai, arsip).
	IncomingStatusMoved LetterEventType = "IncomingStatusMoved"

	// OutgoingStatusMoved dipublikasikan saat status surat keluar berubah.
	OutgoingStatusMoved LetterEventType = "OutgoingStatusMoved"

	// DispositionCreated dipublikasikan saat direktur membuat disposisi;
	// satu event per disposisi, bukan per assignee.
	DispositionCreated LetterEventType = "DispositionCreated"
)

// LetterEvent adalah payload event dokumen. Kind membedakan surat masuk
// dan keluar; Number berisi nomor agenda atau nomor surat (bisa kosong
// untuk draft).
type LetterEvent struct {
	Type      LetterEventType
	Kind      models.TargetKind
	LetterID  uint
	Number    string
	Subject   string
	OldStatus string
	NewStatus string

	// Terisi hanya untuk DispositionCreated.
	DispositionID uint
	AssigneeIDs   []uint
}

// LetterEventBus adalah channel event dokumen. Di-buffer agar publish dari
// handler API tidak pernah blocking.
var LetterEventBus = make(chan LetterEvent, 100)

// Publish mengirim event tanpa blocking; event dibuang (bukan ditunda)
// bila buffer penuh dan consumer mati.
func Publish(ev LetterEvent) {
	select {
	case LetterEventBus <- ev:
	default:
	}
}
