// internals/features/payment/controller/enrollment_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"esta_backend/internals/configs"
	paymentDTO "esta_backend/internals/features/payment/dto"
	paymentModel "esta_backend/internals/features/payment/model"
	paymentService "esta_backend/internals/features/payment/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// ==========================================
// ✅ GET /api/courses/:courseId/enrollment
// ==========================================
// Selalu 200 dengan {isEnrolled}; error internal tidak pernah bocor keluar
// (fail-closed → false).
func (ctrl *EnrollmentController) CheckMyEnrollment(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var count int64
	enrolled := false
	if derr := ctrl.DB.Model(&paymentModel.Enrollment{}).
		Where("auth_id = ? AND course_id = ?", user.ID, courseID).
		Count(&count).Error; derr == nil {
		enrolled = count > 0
	}
	return helper.JsonOK(c, "ok", paymentDTO.EnrollmentCheckResponse{IsEnrolled: enrolled})
}

// ==============================================
// ✅ GET /internal/enrollments/check (service ke service)
// ==============================================
// Dipanggil service lain dengan X-Internal-Secret, tanpa JWT.
func (ctrl *EnrollmentController) InternalCheck(c *fiber.Ctx) error {
	if c.Get("X-Internal-Secret") != configs.InternalAPISecret || configs.InternalAPISecret == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	authID := c.Query("authId")
	courseID, err := uuid.Parse(c.Query("courseId"))
	if err != nil || authID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "authId and courseId are required")
	}

	var count int64
	enrolled := false
	if derr := ctrl.DB.Model(&paymentModel.Enrollment{}).
		Where("auth_id = ? AND course_id = ?", authID, courseID).
		Count(&count).Error; derr == nil {
		enrolled = count > 0
	}
	return c.JSON(paymentDTO.EnrollmentCheckResponse{IsEnrolled: enrolled})
}

// ==========================
// ✅ GET /api/my-courses
// ==========================
func (ctrl *EnrollmentController) ListMyCourses(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	enrollments, err := paymentService.ListEnrolledCourses(ctrl.DB, user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	resp := make([]paymentDTO.EnrolledCourseResponse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		item := paymentDTO.EnrolledCourseResponse{
			CourseID:   e.CourseID,
			Title:      e.Course.Title,
			Slug:       e.Course.Slug,
			Thumbnail:  e.Course.Thumbnail,
			EnrolledAt: e.CreatedAt,
		}
		if e.Course.Teacher != nil {
			item.TeacherName = e.Course.Teacher.Name
		}
		resp = append(resp, item)
	}
	return helper.JsonOK(c, "ok", resp)
}
