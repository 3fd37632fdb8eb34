// internals/features/courses/course/controller/course_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"esta_backend/internals/features/courses/access"
	courseDTO "esta_backend/internals/features/courses/course/dto"
	courseModel "esta_backend/internals/features/courses/course/model"
	courseService "esta_backend/internals/features/courses/course/service"
	"esta_backend/internals/features/courses/gateway"
	notifService "esta_backend/internals/features/engagement/notification/service"
	paymentService "esta_backend/internals/features/payment/service"
	userService "esta_backend/internals/features/users/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type CourseController struct {
	DB       *gorm.DB
	Gateway  *gateway.Client
	Enroll   access.EnrollmentChecker
	Validate *validator.Validate
}

func NewCourseController(db *gorm.DB, gw *gateway.Client) *CourseController {
	return &CourseController{
		DB:       db,
		Gateway:  gw,
		Enroll:   paymentService.NewEnrollmentChecker(db),
		Validate: validator.New(),
	}
}

// =============================
// ✅ POST /api/courses (teacher)
// =============================
func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	var body courseDTO.CreateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !courseModel.CourseLevel(body.Level).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course level: "+body.Level)
	}

	// Tukar paspor → profil teacher (slug butuh username)
	teacher, err := userService.FindTeacherByAuthID(ctrl.DB, user.ID)
	if err != nil {
		if errors.Is(err, userService.ErrTeacherNotFound) {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden: teacher profile required")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve teacher profile")
	}

	slug, err := helper.GenerateCourseSlug(body.Title, teacher.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	remote, err := ctrl.Gateway.CreateCourse(c.Context(), user.ID, gateway.CreateCourseInput{
		Title:       body.Title,
		Slug:        slug,
		Description: body.Description,
		Price:       body.Price,
		IsFree:      body.IsFree,
		Level:       body.Level,
		TeacherID:   teacher.ID.String(),
		CategoryIDs: body.CategoryIDs,
	})
	if err != nil {
		return err
	}

	course, err := courseService.MirrorFromRemote(ctrl.DB, remote)
	if err != nil {
		log.Printf("[ERROR] Gagal mirror course %s ke cache lokal: %v", remote.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save course")
	}

	resp, err := courseService.Enrich(ctrl.DB, course)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", resp)
}

// ==================================
// ✅ PATCH /api/courses/:id (teacher)
// ==================================
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := ctrl.authorizeContentEdit(user, courseID)
	if err != nil {
		return err
	}

	remote, err := ctrl.Gateway.UpdateCourse(c.Context(), user.ID, course.ID, gateway.UpdateCourseInput{
		Title:       body.Title,
		Description: body.Description,
		Thumbnail:   body.Thumbnail,
		Price:       body.Price,
		IsFree:      body.IsFree,
		Level:       body.Level,
		CategoryIDs: body.CategoryIDs,
	})
	if err != nil {
		return err
	}

	updated, err := courseService.MirrorFromRemote(ctrl.DB, remote)
	if err != nil {
		log.Printf("[ERROR] Gagal mirror course %s ke cache lokal: %v", remote.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save course")
	}

	resp, err := courseService.Enrich(ctrl.DB, updated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
	}
	return helper.JsonUpdated(c, "Course berhasil diperbarui", resp)
}

// =========================================
// ✅ PATCH /api/courses/:id/status (teacher/admin)
// =========================================
func (ctrl *CourseController) UpdateCourseStatus(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body courseDTO.UpdateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	owns, err := access.ValidateCourseOwnership(ctrl.DB, user.ID, user.Role, courseID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check ownership")
	}
	if !owns {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not own this course")
	}

	course, err := courseService.FindByID(ctrl.DB, courseID)
	if err != nil {
		return err
	}

	target := courseModel.CourseStatus(body.Status)
	if err := courseService.ValidateTransition(course.Status, target, user.Role); err != nil {
		return err
	}

	remote, err := ctrl.Gateway.UpdateCourseStatus(c.Context(), user.ID, course.ID, string(target))
	if err != nil {
		return err
	}

	updated, err := courseService.MirrorFromRemote(ctrl.DB, remote)
	if err != nil {
		log.Printf("[ERROR] Gagal mirror course %s ke cache lokal: %v", remote.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save course")
	}

	// Notifikasi publish ke teacher — best-effort
	if updated.Status == courseModel.StatusPublished {
		if teacher, terr := findTeacherAuthID(ctrl.DB, updated.TeacherID); terr == nil {
			notifService.NotifyCoursePublished(ctrl.DB, teacher, updated.ID, updated.Title)
		}
	}

	resp, err := courseService.Enrich(ctrl.DB, updated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
	}
	return helper.JsonUpdated(c, "Status course berhasil diubah", resp)
}

// ==================================
// ✅ PUT /api/courses/:id/tags (teacher)
// ==================================
func (ctrl *CourseController) UpdateCourseTags(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body courseDTO.UpdateTagsRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := ctrl.authorizeContentEdit(user, courseID)
	if err != nil {
		return err
	}

	remote, err := ctrl.Gateway.UpdateCourseTags(c.Context(), user.ID, course.ID, body.Tags)
	if err != nil {
		return err
	}

	updated, err := courseService.MirrorFromRemote(ctrl.DB, remote)
	if err != nil {
		log.Printf("[ERROR] Gagal mirror course %s ke cache lokal: %v", remote.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save course")
	}

	resp, err := courseService.Enrich(ctrl.DB, updated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
	}
	return helper.JsonUpdated(c, "Tags course berhasil diperbarui", resp)
}

// ==============================
// ✅ GET /api/courses/:id (optional auth)
// ==============================
func (ctrl *CourseController) GetCourseByID(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	course, err := courseService.FindByID(ctrl.DB, courseID)
	if err != nil {
		return err
	}
	if err := ctrl.authorizeRead(c, course); err != nil {
		return err
	}

	resp, err := courseService.Enrich(ctrl.DB, course)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
	}
	return helper.JsonOK(c, "ok", resp)
}

// =====================================
// ✅ GET /api/courses/slug/:slug (optional auth)
// =====================================
func (ctrl *CourseController) GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course slug")
	}

	course, err := courseService.FindBySlug(ctrl.DB, slug)
	if err != nil {
		return err
	}
	if err := ctrl.authorizeRead(c, course); err != nil {
		return err
	}

	resp, err := courseService.Enrich(ctrl.DB, course)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
	}
	return helper.JsonOK(c, "ok", resp)
}

// ==============================
// ✅ GET /api/courses (public)
// ==============================
// Listing publik SELALU dipaksa status=PUBLISHED, apapun query user.
func (ctrl *CourseController) ListPublicCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := gateway.ListQuery{
		Status:   []string{string(courseModel.StatusPublished)},
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
		Page:     paging.Page,
		Limit:    paging.Limit,
	}
	if level := c.Query("level"); level != "" {
		q.Level = []string{level}
	}

	result, err := ctrl.Gateway.ListCourses(c.Context(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", result.Data, result.Pagination)
}

// ========================================
// ✅ GET /api/dashboard/courses (teacher)
// ========================================
func (ctrl *CourseController) ListMyCourses(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	teacher, err := userService.FindTeacherByAuthID(ctrl.DB, user.ID)
	if err != nil {
		if errors.Is(err, userService.ErrTeacherNotFound) {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden: teacher profile required")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve teacher profile")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	result, err := ctrl.Gateway.ListCoursesByTeacher(c.Context(), user.ID, teacher.ID, paging.Page, paging.Limit)
	if err != nil {
		return err
	}

	enriched := make([]*courseDTO.CourseResponse, 0, len(result.Data))
	for i := range result.Data {
		item, eerr := courseService.EnrichRemote(ctrl.DB, &result.Data[i])
		if eerr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build response")
		}
		enriched = append(enriched, item)
	}
	return helper.JsonList(c, "ok", enriched, result.Pagination)
}

/* =========================================================
   SHARED GUARDS
   ========================================================= */

// authorizeContentEdit: ownership + status editability dalam satu panggilan.
func (ctrl *CourseController) authorizeContentEdit(user helperAuth.AuthUser, courseID uuid.UUID) (*courseModel.Course, error) {
	owns, err := access.ValidateCourseOwnership(ctrl.DB, user.ID, user.Role, courseID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check ownership")
	}
	if !owns {
		return nil, fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not own this course")
	}

	course, err := courseService.FindByID(ctrl.DB, courseID)
	if err != nil {
		return nil, err
	}
	if !courseService.CanEditContent(course.Status, user.Role) {
		return nil, fiber.NewError(fiber.StatusForbidden,
			"Course is not editable in current status: "+string(course.Status))
	}
	return course, nil
}

func (ctrl *CourseController) authorizeRead(c *fiber.Ctx, course *courseModel.Course) error {
	user, _ := helperAuth.GetAuthUser(c)
	allowed, err := access.CanReadCourse(ctrl.DB, ctrl.Enroll, user.ID, user.Role, course)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check access")
	}
	if !allowed {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not have access to this course")
	}
	return nil
}

func findTeacherAuthID(db *gorm.DB, teacherID uuid.UUID) (string, error) {
	var row struct{ AuthID string }
	err := db.Table("teachers").Select("auth_id").Where("id = ?", teacherID).Take(&row).Error
	return row.AuthID, err
}
