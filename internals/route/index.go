// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"esta_backend/internals/constants"
	"esta_backend/internals/features/courses/gateway"
	streamService "esta_backend/internals/features/stream/service"
	middlewareAuth "esta_backend/internals/middlewares/auth"
	routeDetails "esta_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	gw := gateway.NewClient()
	streamClient := streamService.NewStreamClient()

	// ===================== GROUPS =====================

	// PUBLIC → JWT opsional (halaman katalog, detail course)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api", middlewareAuth.OptionalAuth())

	// PRIVATE → wajib login (cart, wishlist, notifikasi, my-courses)
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", middlewareAuth.AuthRequired())

	// TEACHER → teacher atau admin (authoring konten)
	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api",
		middlewareAuth.AuthRequired(),
		middlewareAuth.OnlyRoles("", constants.RoleTeacher, constants.RoleAdmin),
	)

	// ADMIN → admin saja
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/admin",
		middlewareAuth.AuthRequired(),
		middlewareAuth.OnlyRoles("", constants.RoleAdmin),
	)

	// WEBHOOK → tanpa JWT; gerbang = signature masing-masing
	// (/api/mt/webhook untuk Midtrans, /api/str/webhook untuk platform video)
	log.Println("[INFO] Setting up WEBHOOK group...")
	webhooks := app.Group("/api")

	// INTERNAL → service ke service, gerbang X-Internal-Secret
	internal := app.Group("/internal")

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Course routes...")
	routeDetails.CoursePublicRoutes(public, db, gw)
	routeDetails.CourseTeacherRoutes(teacher, db, gw)

	log.Println("[INFO] Mounting Payment routes...")
	routeDetails.PaymentPrivateRoutes(private, db)
	routeDetails.PaymentWebhookRoutes(webhooks, db)
	routeDetails.PaymentInternalRoutes(internal, db)

	log.Println("[INFO] Mounting Engagement routes...")
	routeDetails.EngagementPublicRoutes(public, db)
	routeDetails.EngagementPrivateRoutes(private, db)
	routeDetails.EngagementAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Stream routes...")
	routeDetails.StreamTeacherRoutes(teacher, db, streamClient)
	routeDetails.StreamWebhookRoutes(webhooks, db, streamClient)

	log.Println("[INFO] Mounting Dashboard routes...")
	routeDetails.DashboardRoutes(admin, db)
}
