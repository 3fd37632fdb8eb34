// internals/features/courses/lesson/controller/lesson_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"esta_backend/internals/features/courses/access"
	courseService "esta_backend/internals/features/courses/course/service"
	"esta_backend/internals/features/courses/gateway"
	lessonDTO "esta_backend/internals/features/courses/lesson/dto"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	lessonService "esta_backend/internals/features/courses/lesson/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type LessonController struct {
	DB       *gorm.DB
	Gateway  *gateway.Client
	Validate *validator.Validate
}

func NewLessonController(db *gorm.DB, gw *gateway.Client) *LessonController {
	return &LessonController{DB: db, Gateway: gw, Validate: validator.New()}
}

// ==========================================
// ✅ POST /api/chapters/:chapterId/lessons
// ==========================================
func (ctrl *LessonController) CreateLesson(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	chapterID, err := uuid.Parse(c.Params("chapterId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter id")
	}

	var body lessonDTO.CreateLessonRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctrl.authorizeChapterEdit(user, chapterID); err != nil {
		return err
	}
	// Lesson baru belum punya video — preview langsung on tidak mungkin
	if body.IsPreview {
		return lessonService.ErrPreviewWithoutVideo
	}

	remote, err := ctrl.Gateway.CreateLesson(c.Context(), user.ID, chapterID, gateway.LessonInput{
		Title: &body.Title,
	})
	if err != nil {
		return err
	}

	lesson, err := lessonService.Create(ctrl.DB, chapterID, lessonService.CreateInput{
		ID:    remote.ID,
		Title: body.Title,
	})
	if err != nil {
		log.Printf("[ERROR] Gagal mirror lesson %s ke cache lokal: %v", remote.ID, err)
		return err
	}
	return helper.JsonCreated(c, "Lesson berhasil dibuat", toLessonResponse(lesson))
}

// ==========================================
// ✅ PATCH /api/lessons/:id
// ==========================================
func (ctrl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	var body lessonDTO.UpdateLessonRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctrl.authorizeLessonEdit(user, lessonID); err != nil {
		return err
	}

	// Invariant preview dicek terhadap state FINAL sebelum menyentuh remote
	if body.IsPreview != nil && *body.IsPreview {
		current, ferr := lessonService.FindByID(ctrl.DB, lessonID)
		if ferr != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		if err := lessonService.ValidatePreview(true, current.PlaybackID); err != nil {
			return err
		}
	}

	if _, err := ctrl.Gateway.UpdateLesson(c.Context(), user.ID, lessonID, gateway.LessonInput{
		Title:     body.Title,
		Order:     body.Order,
		IsPreview: body.IsPreview,
	}); err != nil {
		return err
	}

	lesson, err := lessonService.Update(ctrl.DB, lessonID, lessonService.UpdateInput{
		Title:     body.Title,
		Order:     body.Order,
		IsPreview: body.IsPreview,
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Lesson berhasil diperbarui", toLessonResponse(lesson))
}

// ==================================================
// ✅ GET /api/chapters/:chapterId/lessons (read lokal)
// ==================================================
func (ctrl *LessonController) ListLessons(c *fiber.Ctx) error {
	chapterID, err := uuid.Parse(c.Params("chapterId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter id")
	}

	var lessons []lessonModel.Lesson
	if err := ctrl.DB.Where("chapter_id = ?", chapterID).
		Order(`"order" ASC`).Find(&lessons).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lessons")
	}

	resp := make([]lessonDTO.LessonResponse, 0, len(lessons))
	for i := range lessons {
		resp = append(resp, toLessonResponse(&lessons[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// ==================================================
// ✅ GET /api/lessons/:lessonId (preview bebas, sisanya wajib login)
// ==================================================
func (ctrl *LessonController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}
	lesson, err := lessonService.FindByID(ctrl.DB, lessonID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
	}
	return helper.JsonOK(c, "ok", toLessonResponse(lesson))
}

/* =========================================================
   GUARDS & MAPPERS
   ========================================================= */

func (ctrl *LessonController) authorizeChapterEdit(user helperAuth.AuthUser, chapterID uuid.UUID) error {
	owns, err := access.ValidateChapterOwnership(ctrl.DB, user.ID, user.Role, chapterID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check ownership")
	}
	if !owns {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not own this chapter")
	}
	return ctrl.checkEditableByChapter(user, chapterID)
}

func (ctrl *LessonController) authorizeLessonEdit(user helperAuth.AuthUser, lessonID uuid.UUID) error {
	owns, err := access.ValidateLessonOwnership(ctrl.DB, user.ID, user.Role, lessonID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check ownership")
	}
	if !owns {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not own this lesson")
	}

	lesson, err := lessonService.FindByID(ctrl.DB, lessonID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
	}
	return ctrl.checkEditableByChapter(user, lesson.ChapterID)
}

func (ctrl *LessonController) checkEditableByChapter(user helperAuth.AuthUser, chapterID uuid.UUID) error {
	var row struct{ CourseID uuid.UUID }
	if err := ctrl.DB.Table("chapters").Select("course_id").
		Where("id = ?", chapterID).Take(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
	}
	course, err := courseService.FindByID(ctrl.DB, row.CourseID)
	if err != nil {
		return err
	}
	if !courseService.CanEditContent(course.Status, user.Role) {
		return fiber.NewError(fiber.StatusForbidden,
			"Course is not editable in current status: "+string(course.Status))
	}
	return nil
}

func toLessonResponse(l *lessonModel.Lesson) lessonDTO.LessonResponse {
	return lessonDTO.LessonResponse{
		ID:         l.ID,
		Title:      l.Title,
		Order:      l.Order,
		PlaybackID: l.PlaybackID,
		Duration:   l.Duration,
		IsPreview:  l.IsPreview,
		ChapterID:  l.ChapterID,
	}
}
