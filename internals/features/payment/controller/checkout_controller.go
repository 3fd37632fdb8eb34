// internals/features/payment/controller/checkout_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentDTO "esta_backend/internals/features/payment/dto"
	paymentModel "esta_backend/internals/features/payment/model"
	paymentService "esta_backend/internals/features/payment/service"
	userService "esta_backend/internals/features/users/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type CheckoutController struct {
	DB *gorm.DB
}

func NewCheckoutController(db *gorm.DB) *CheckoutController {
	return &CheckoutController{DB: db}
}

// ==========================
// ✅ POST /api/checkout
// ==========================
// Cart → Transaction(pending) → Snap token. Cart item TIDAK dihapus di sini;
// penghapusan terjadi saat webhook settlement masuk.
func (ctrl *CheckoutController) Checkout(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	var cart paymentModel.Cart
	if err := ctrl.DB.Preload("Items").Preload("Items.Course").
		Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
	}
	if len(cart.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
	}

	var total int64
	for _, item := range cart.Items {
		if item.Course == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cart contains unknown course")
		}
		if !item.Course.IsFree {
			total += item.Course.Price
		}
	}
	if total <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to pay for in cart")
	}

	orderID := paymentService.GenerateOrderID()
	trx := paymentModel.Transaction{
		UserID:          user.ID,
		MidtransOrderID: orderID,
		Status:          "pending",
		TotalAmount:     total,
		CartID:          cart.ID,
	}
	if err := ctrl.DB.Create(&trx).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create transaction")
	}

	customerName := userService.DisplayName(ctrl.DB, user.ID)
	snapResp, err := paymentService.CreateSnapTransaction(orderID, total, customerName)
	if err != nil {
		log.Printf("[ERROR] Gagal membuat snap transaction %s: %v", orderID, err)
		return fiber.NewError(fiber.StatusBadGateway, "Payment gateway unavailable")
	}

	return helper.JsonCreated(c, "Checkout berhasil dibuat", paymentDTO.CheckoutResponse{
		OrderID:     orderID,
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
		TotalAmount: total,
	})
}
