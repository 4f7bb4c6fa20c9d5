package fcm

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils/events"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Prefix nama topic di Firebase
const FCMTopicPrefix = "topic_"

var fcmClient *messaging.Client

// Init menyiapkan Firebase Admin SDK. Dipanggil eksplisit dari main dan
// hanya bila FCM_PROJECT_ID di-set; tanpa itu notifikasi push dimatikan
// dan consumer hanya membuang event.
func Init(ctx context.Context) error {
	projectID := os.Getenv("FCM_PROJECT_ID")
	if projectID == "" {
		log.Println("FCM_PROJECT_ID kosong, notifikasi push dinonaktifkan")
		return nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return fmt.Errorf("init Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("init Firebase Messaging client: %w", err)
	}

	fcmClient = client
	log.Println("Firebase Admin SDK siap")
	return nil
}

// mapRoleToTopic menentukan topic tujuan dari role penerima.
// Contoh: role "direktur" -> "topic_direktur".
func mapRoleToTopic(role models.Role) string {
	return FCMTopicPrefix + string(role)
}

func userTopic(userID uint) string {
	return FCMTopicPrefix + "user_" + strconv.FormatUint(uint64(userID), 10)
}

// SendNotificationToTopic mengirim satu notifikasi ke sebuah topic.
func SendNotificationToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	if fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{ChannelID: "default_channel"},
		},
	}

	_, err := fcmClient.Send(ctx, msg)
	return err
}

// StartNotifierConsumer mengonsumsi event dokumen dan menerjemahkannya ke
// notifikasi push. Berhenti saat ctx dibatalkan.
func StartNotifierConsumer(ctx context.Context) {
	log.Println("FCM notifier consumer jalan")

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events.LetterEventBus:
			if fcmClient == nil {
				continue
			}

			// Goroutine agar konsumsi bus tidak blocking
			go func(event events.LetterEvent) {
				sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				data := map[string]string{
					"letter_id": strconv.FormatUint(uint64(event.LetterID), 10),
					"kind":      string(event.Kind),
					"status":    event.NewStatus,
				}

				switch event.Type {

				case events.IncomingRegistered:
					// Surat masuk baru menunggu disposisi direktur.
					topic := mapRoleToTopic(models.RoleDirektur)
					title := "Surat Masuk Baru"
					body := fmt.Sprintf("Surat %s (%s) menunggu disposisi Anda.", event.Number, event.Subject)
					if err := SendNotificationToTopic(sendCtx, topic, title, body, data); err != nil {
						log.Printf("fcm: %v", err)
					}

				case events.DispositionCreated:
					// Satu notifikasi per assignee.
					title := "Disposisi Baru"
					body := fmt.Sprintf("Surat %s didisposisikan kepada Anda.", event.Number)
					for _, id := range event.AssigneeIDs {
						if err := SendNotificationToTopic(sendCtx, userTopic(id), title, body, data); err != nil {
							log.Printf("fcm: %v", err)
						}
					}

				case events.OutgoingStatusMoved:
					// Perubahan status surat keluar menarik buat sekretariat
					// (penomoran, pengiriman) dan direktur (persetujuan).
					var topic, title, body string
					switch models.OutgoingStatus(event.NewStatus) {
					case models.OutgoingReview:
						topic = mapRoleToTopic(models.RoleDirektur)
						title = "Review Diperlukan"
						body = fmt.Sprintf("Surat keluar \"%s\" menunggu review.", event.Subject)
					case models.OutgoingFinal:
						topic = mapRoleToTopic(models.RoleSekretariat)
						title = "Surat Final"
						body = fmt.Sprintf("Surat %s siap dikirim.", event.Number)
					default:
						return
					}
					if err := SendNotificationToTopic(sendCtx, topic, title, body, data); err != nil {
						log.Printf("fcm: %v", err)
					}
				}
			}(e)
		}
	}
}
