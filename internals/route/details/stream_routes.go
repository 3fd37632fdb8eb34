// file: internals/route/details/stream_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	streamController "esta_backend/internals/features/stream/controller"
	streamService "esta_backend/internals/features/stream/service"
)

// ✅ Mint upload URL (teacher/admin, ownership dicek di controller)
func StreamTeacherRoutes(api fiber.Router, db *gorm.DB, client *streamService.StreamClient) {
	stream := streamController.NewStreamController(db, client)
	api.Post("/lessons/:id/upload-url", stream.CreateUploadURL)
}

// ✅ Notifikasi video-ready dari platform (gerbang = signature HMAC)
func StreamWebhookRoutes(api fiber.Router, db *gorm.DB, client *streamService.StreamClient) {
	stream := streamController.NewStreamController(db, client)
	api.Post("/str/webhook", stream.HandleWebhook)
}
