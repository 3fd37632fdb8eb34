// internals/features/engagement/wishlist/controller/wishlist_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
	loveService "esta_backend/internals/features/engagement/love/service"
	wishlistModel "esta_backend/internals/features/engagement/wishlist/model"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type WishlistController struct {
	DB *gorm.DB
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{DB: db}
}

// ==========================
// ✅ POST /api/bookmarks
// ==========================
func (ctrl *WishlistController) Add(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	var body struct {
		CourseID uuid.UUID `json:"courseId"`
	}
	if err := c.BodyParser(&body); err != nil || body.CourseID == uuid.Nil {
		return fiber.NewError(fiber.StatusBadRequest, "courseId is required")
	}

	var course courseModel.Course
	if err := ctrl.DB.First(&course, "id = ?", body.CourseID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	item := wishlistModel.Wishlist{AuthID: user.ID, UserRole: user.Role, CourseID: body.CourseID}
	if err := ctrl.DB.Create(&item).Error; err != nil {
		if loveService.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Course already in wishlist")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add to wishlist")
	}
	return helper.JsonCreated(c, "Course masuk wishlist", item)
}

// ==================================
// ✅ DELETE /api/bookmarks/:courseId
// ==================================
func (ctrl *WishlistController) Remove(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	res := ctrl.DB.Where("auth_id = ? AND course_id = ?", user.ID, courseID).
		Delete(&wishlistModel.Wishlist{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove from wishlist")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Course not found in wishlist")
	}
	return helper.JsonDeleted(c, "Course dihapus dari wishlist", fiber.Map{"courseId": courseID})
}

// ==========================
// ✅ GET /api/bookmarks
// ==========================
func (ctrl *WishlistController) List(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	var items []wishlistModel.Wishlist
	if err := ctrl.DB.Preload("Course").Preload("Course.Teacher").
		Where("auth_id = ?", user.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch wishlist")
	}
	return helper.JsonOK(c, "ok", items)
}
