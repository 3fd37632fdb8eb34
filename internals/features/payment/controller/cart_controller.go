// internals/features/payment/controller/cart_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
	paymentDTO "esta_backend/internals/features/payment/dto"
	paymentModel "esta_backend/internals/features/payment/model"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type CartController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db, Validate: validator.New()}
}

// findOrCreateCart: satu cart aktif per user.
func (ctrl *CartController) findOrCreateCart(authID string) (*paymentModel.Cart, error) {
	var cart paymentModel.Cart
	err := ctrl.DB.Where("user_id = ?", authID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = paymentModel.Cart{UserID: authID}
	if err := ctrl.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// ==========================
// ✅ POST /api/cart/items
// ==========================
func (ctrl *CartController) AddItem(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	var body paymentDTO.AddCartItemRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Hanya course PUBLISHED yang bisa dibeli
	var course courseModel.Course
	if err := ctrl.DB.First(&course, "id = ?", body.CourseID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}
	if course.Status != courseModel.StatusPublished {
		return fiber.NewError(fiber.StatusBadRequest, "Course is not available for purchase")
	}

	cart, err := ctrl.findOrCreateCart(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve cart")
	}

	// Sudah ada → refresh createdAt saja (idempoten, bukan conflict)
	var existing paymentModel.CartItem
	err = ctrl.DB.Where("cart_id = ? AND course_id = ?", cart.ID, body.CourseID).
		First(&existing).Error
	if err == nil {
		if uerr := ctrl.DB.Model(&existing).
			Update("created_at", time.Now()).Error; uerr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update cart")
		}
		return helper.JsonOK(c, "Course sudah ada di cart", existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check cart")
	}

	item := paymentModel.CartItem{CartID: cart.ID, CourseID: body.CourseID}
	if err := ctrl.DB.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add course to cart")
	}
	return helper.JsonCreated(c, "Course berhasil masuk cart", item)
}

// ==========================
// ✅ GET /api/cart
// ==========================
func (ctrl *CartController) GetCart(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	cart, err := ctrl.findOrCreateCart(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve cart")
	}
	if err := ctrl.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Preload("Items.Course").First(cart, "id = ?", cart.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch cart")
	}
	return helper.JsonOK(c, "ok", cart)
}

// ====================================
// ✅ DELETE /api/cart/items/:courseId
// ====================================
func (ctrl *CartController) RemoveItem(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	cart, err := ctrl.findOrCreateCart(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve cart")
	}

	res := ctrl.DB.Where("cart_id = ? AND course_id = ?", cart.ID, courseID).
		Delete(&paymentModel.CartItem{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove course from cart")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Course not found in cart")
	}
	return helper.JsonDeleted(c, "Course dihapus dari cart", fiber.Map{"courseId": courseID})
}
