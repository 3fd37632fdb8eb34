// file: internals/route/details/engagement_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	loveController "esta_backend/internals/features/engagement/love/controller"
	notifController "esta_backend/internals/features/engagement/notification/controller"
	wishlistController "esta_backend/internals/features/engagement/wishlist/controller"
)

// ✅ Angka love per course bisa dilihat siapa saja
func EngagementPublicRoutes(api fiber.Router, db *gorm.DB) {
	love := loveController.NewLoveController(db)
	api.Get("/loves/course/count/:courseId", love.CountCourseLoves)
}

// ✅ Love, bookmark, notifikasi (wajib login)
func EngagementPrivateRoutes(api fiber.Router, db *gorm.DB) {
	love := loveController.NewLoveController(db)
	wishlist := wishlistController.NewWishlistController(db)
	notif := notifController.NewNotificationController(db)

	api.Post("/loves/course/:courseId", love.LoveCourse)
	api.Delete("/loves/course/:courseId", love.UnloveCourse)
	api.Post("/loves/user/:id", love.LoveUser)
	api.Delete("/loves/user/:id", love.UnloveUser)

	api.Get("/bookmarks", wishlist.List)
	api.Post("/bookmarks", wishlist.Add)
	api.Delete("/bookmarks/:courseId", wishlist.Remove)

	api.Get("/notifications", notif.List)
	api.Get("/notifications/unread-count", notif.UnreadCount)
	api.Patch("/notifications/read-all", notif.MarkAllRead)
	api.Patch("/notifications/:id/read", notif.MarkRead)
	api.Delete("/notifications/:id", notif.Delete)
}

// ✅ Broadcast pengumuman (admin)
func EngagementAdminRoutes(api fiber.Router, db *gorm.DB) {
	notif := notifController.NewNotificationController(db)
	api.Post("/notifications", notif.Broadcast)
}
