// internals/features/stream/controller/stream_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"esta_backend/internals/configs"
	"esta_backend/internals/features/courses/access"
	lessonService "esta_backend/internals/features/courses/lesson/service"
	streamService "esta_backend/internals/features/stream/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

// lookupRetries/lookupDelay: webhook video-ready bisa datang sebelum commit
// lesson selesai — tunggu sebentar sebelum menyerah.
const (
	lookupRetries = 5
	lookupDelay   = 500 * time.Millisecond
)

type StreamController struct {
	DB     *gorm.DB
	Client *streamService.StreamClient
}

func NewStreamController(db *gorm.DB, client *streamService.StreamClient) *StreamController {
	return &StreamController{DB: db, Client: client}
}

// ==========================================
// ✅ POST /api/lessons/:id/upload-url (teacher)
// ==========================================
func (ctrl *StreamController) CreateUploadURL(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	owns, err := access.ValidateLessonOwnership(ctrl.DB, user.ID, user.Role, lessonID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check ownership")
	}
	if !owns {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not own this lesson")
	}

	upload, err := ctrl.Client.CreateDirectUpload(c.Context(), lessonID.String())
	if err != nil {
		log.Printf("[ERROR] Gagal mint upload URL lesson %s: %v", lessonID, err)
		return fiber.NewError(fiber.StatusBadGateway, "Video platform unavailable")
	}
	return helper.JsonCreated(c, "Upload URL berhasil dibuat", upload)
}

// streamWebhookPayload: bentuk notifikasi video-ready dari platform.
type streamWebhookPayload struct {
	UID      string  `json:"uid"`
	Duration float64 `json:"duration"`
	Status   struct {
		State string `json:"state"`
	} `json:"status"`
	Meta struct {
		LessonID string `json:"lessonId"`
	} `json:"meta"`
}

// ==================================
// ✅ POST /api/str/webhook
// ==================================
func (ctrl *StreamController) HandleWebhook(c *fiber.Ctx) error {
	raw := c.Body()

	if !streamService.VerifyWebhookSignature(configs.StreamWebhookSecret, c.Get("Webhook-Signature"), raw) {
		return fiber.NewError(fiber.StatusForbidden, "Invalid signature")
	}

	var payload streamWebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid webhook payload")
	}
	if payload.UID == "" || payload.Meta.LessonID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid webhook payload")
	}
	if payload.Status.State != "" && payload.Status.State != "ready" {
		// Hanya state ready yang kita proses; sisanya ack saja
		return helper.JsonOK(c, "ok", fiber.Map{"uid": payload.UID, "skipped": true})
	}

	lessonID, err := uuid.Parse(payload.Meta.LessonID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lessonId in webhook meta")
	}

	// Lesson bisa belum kelihatan (race dengan commit create) — retry dulu
	var found bool
	for attempt := 0; attempt < lookupRetries; attempt++ {
		if _, lerr := lessonService.FindByID(ctrl.DB, lessonID); lerr == nil {
			found = true
			break
		}
		time.Sleep(lookupDelay)
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
	}

	duration := int(math.Round(payload.Duration))
	lesson, err := lessonService.AttachPlayback(ctrl.DB, lessonID, payload.UID, duration)
	if err != nil {
		log.Printf("[ERROR] Gagal attach playback %s ke lesson %s: %v", payload.UID, lessonID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process webhook")
	}

	// Nama tampilan di dashboard platform — best-effort
	if lesson.Title != "" {
		if merr := ctrl.Client.UpdateDisplayMetadata(c.Context(), payload.UID, lesson.Title); merr != nil {
			log.Printf("[ERROR] Gagal update display metadata video %s: %v", payload.UID, merr)
		}
	}
	return helper.JsonOK(c, "ok", fiber.Map{"lessonId": lessonID, "playbackId": payload.UID})
}
