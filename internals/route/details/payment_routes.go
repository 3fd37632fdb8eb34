// file: internals/route/details/payment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "esta_backend/internals/features/payment/controller"
	"esta_backend/internals/middlewares"
)

// ✅ Cart, checkout, enrollment (wajib login)
func PaymentPrivateRoutes(api fiber.Router, db *gorm.DB) {
	cart := paymentController.NewCartController(db)
	checkout := paymentController.NewCheckoutController(db)
	enrollment := paymentController.NewEnrollmentController(db)

	api.Get("/cart", cart.GetCart)
	api.Post("/cart/items", cart.AddItem)
	api.Delete("/cart/items/:courseId", cart.RemoveItem)

	api.Post("/checkout", middlewares.CheckoutRateLimiter(), checkout.Checkout)

	api.Get("/my-courses", enrollment.ListMyCourses)
	api.Get("/courses/:courseId/enrollment", enrollment.CheckMyEnrollment)
}

// ✅ Notifikasi pembayaran dari Midtrans (gerbang = signature)
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB) {
	webhook := paymentController.NewPaymentWebhookController(db)
	api.Post("/mt/webhook", webhook.HandleNotification)
}

// ✅ Cek enrollment antar-service (gerbang = X-Internal-Secret)
func PaymentInternalRoutes(api fiber.Router, db *gorm.DB) {
	enrollment := paymentController.NewEnrollmentController(db)
	api.Get("/enrollments/check", enrollment.InternalCheck)
}
