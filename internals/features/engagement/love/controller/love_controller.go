// internals/features/engagement/love/controller/love_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
	loveService "esta_backend/internals/features/engagement/love/service"
	notifService "esta_backend/internals/features/engagement/notification/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type LoveController struct {
	DB *gorm.DB
}

func NewLoveController(db *gorm.DB) *LoveController {
	return &LoveController{DB: db}
}

// ===================================
// ✅ POST /api/loves/course/:courseId
// ===================================
func (ctrl *LoveController) LoveCourse(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var course courseModel.Course
	if err := ctrl.DB.Preload("Teacher").First(&course, "id = ?", courseID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	love, err := loveService.LoveCourse(ctrl.DB, user.ID, user.Role, courseID)
	if err != nil {
		return err
	}

	// Notifikasi ke teacher — best-effort
	if course.Teacher != nil {
		notifService.NotifyCourseLike(ctrl.DB, course.Teacher.AuthID, user.ID, course.ID, course.Title)
	}
	return helper.JsonCreated(c, "Course berhasil di-love", love)
}

// =====================================
// ✅ DELETE /api/loves/course/:courseId
// =====================================
func (ctrl *LoveController) UnloveCourse(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}
	if err := loveService.UnloveCourse(ctrl.DB, user.ID, courseID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Love dihapus", fiber.Map{"courseId": courseID})
}

// ==========================================
// ✅ GET /api/loves/course/count/:courseId
// ==========================================
func (ctrl *LoveController) CountCourseLoves(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}
	count, err := loveService.CountCourseLoves(ctrl.DB, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count loves")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"courseId": courseID, "count": count})
}

// ==============================
// ✅ POST /api/loves/user/:id
// ==============================
func (ctrl *LoveController) LoveUser(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	lovedUserID := c.Params("id")
	if lovedUserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	love, err := loveService.LoveUser(ctrl.DB, user.ID, user.Role, lovedUserID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "User berhasil di-love", love)
}

// ==============================
// ✅ DELETE /api/loves/user/:id
// ==============================
func (ctrl *LoveController) UnloveUser(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	lovedUserID := c.Params("id")
	if lovedUserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	if err := loveService.UnloveUser(ctrl.DB, user.ID, lovedUserID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Love dihapus", fiber.Map{"userId": lovedUserID})
}
