// internals/features/payment/controller/webhook_controller.go
package controller

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentService "esta_backend/internals/features/payment/service"
	helper "esta_backend/internals/helpers"
)

type PaymentWebhookController struct {
	DB *gorm.DB
}

func NewPaymentWebhookController(db *gorm.DB) *PaymentWebhookController {
	return &PaymentWebhookController{DB: db}
}

// ==================================
// ✅ POST /api/mt/webhook
// ==================================
// Endpoint tak ber-auth; satu-satunya gerbang adalah signature. Response
// error dibuat generic — webhook tidak boleh membocorkan detail internal.
func (ctrl *PaymentWebhookController) HandleNotification(c *fiber.Ctx) error {
	raw := c.Body()

	var notif paymentService.MidtransNotification
	if err := json.Unmarshal(raw, &notif); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification payload")
	}
	if notif.OrderID == "" || notif.SignatureKey == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification payload")
	}

	if !paymentService.IsSignatureValid(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		log.Printf("[ERROR] Signature webhook midtrans tidak valid (order=%s)", notif.OrderID)
		return fiber.NewError(fiber.StatusForbidden, "Invalid signature")
	}

	if err := paymentService.ReconcilePayment(ctrl.DB, &notif, raw); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return fe
		}
		log.Printf("[ERROR] Gagal memproses webhook midtrans (order=%s): %v", notif.OrderID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process notification")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"orderId": notif.OrderID})
}
