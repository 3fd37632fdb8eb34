// internals/features/courses/chapter/controller/chapter_controller.go
//
// Mutasi chapter: validasi lokal (fail-fast) → mutasi di course-service →
// mirror ke cache lokal dalam satu transaksi. Urutan itu penting: batch
// yang invalid tidak boleh menyentuh remote sama sekali.
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"esta_backend/internals/features/courses/access"
	chapterDTO "esta_backend/internals/features/courses/chapter/dto"
	chapterModel "esta_backend/internals/features/courses/chapter/model"
	chapterService "esta_backend/internals/features/courses/chapter/service"
	courseModel "esta_backend/internals/features/courses/course/model"
	courseService "esta_backend/internals/features/courses/course/service"
	"esta_backend/internals/features/courses/gateway"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type ChapterController struct {
	DB       *gorm.DB
	Gateway  *gateway.Client
	Validate *validator.Validate
}

func NewChapterController(db *gorm.DB, gw *gateway.Client) *ChapterController {
	return &ChapterController{DB: db, Gateway: gw, Validate: validator.New()}
}

// ==========================================
// ✅ POST /api/courses/:courseId/chapters
// ==========================================
func (ctrl *ChapterController) CreateChapter(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body chapterDTO.CreateChapterRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := ctrl.authorizeCourseEdit(user, courseID)
	if err != nil {
		return err
	}

	// Bentuk judul/slug final SEBELUM ke remote, biar dua sisi identik
	order, err := chapterService.NextOrder(ctrl.DB, course.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve chapter order")
	}
	title := chapterService.FormatTitle(order, body.Title)
	slug := helper.GenerateChapterSlug(course.Slug, order+1, "")

	remote, err := ctrl.Gateway.CreateChapter(c.Context(), user.ID, course.ID, gateway.ChapterInput{
		Title: title,
		Slug:  slug,
		Order: &order,
	})
	if err != nil {
		return err
	}

	chapter := chapterModel.Chapter{
		ID:       remote.ID,
		Title:    title,
		Slug:     slug,
		Order:    order,
		CourseID: course.ID,
	}
	if err := ctrl.DB.Create(&chapter).Error; err != nil {
		log.Printf("[ERROR] Gagal mirror chapter %s ke cache lokal: %v", remote.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save chapter")
	}
	return helper.JsonCreated(c, "Chapter berhasil dibuat", toChapterResponse(&chapter))
}

// ==========================================
// ✅ PATCH /api/chapters/:id (judul saja)
// ==========================================
func (ctrl *ChapterController) UpdateChapter(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	chapterID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter id")
	}

	var body chapterDTO.UpdateChapterRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	chapter, err := ctrl.authorizeChapterEdit(user, chapterID)
	if err != nil {
		return err
	}

	// Nomor tetap, suffix slug tetap — hanya bagian raw judul yang berubah
	title := chapterService.FormatTitle(chapter.Order, body.Title)
	if _, err := ctrl.Gateway.UpdateChapter(c.Context(), user.ID, chapter.ID, gateway.ChapterInput{
		Title: title,
		Slug:  chapter.Slug,
	}); err != nil {
		return err
	}

	updated, err := chapterService.UpdateTitle(ctrl.DB, chapter.ID, body.Title)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Chapter berhasil diperbarui", toChapterResponse(updated))
}

// ====================================================
// ✅ PUT /api/courses/:courseId/chapters/reorder
// ====================================================
func (ctrl *ChapterController) ReorderChapters(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body chapterDTO.ReorderChaptersRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	items := make([]chapterService.ReorderInput, 0, len(body.Chapters))
	for _, it := range body.Chapters {
		items = append(items, chapterService.ReorderInput{ID: it.ID, Order: it.Order})
	}

	// Duplikat ditolak sebelum menyentuh remote
	if err := chapterService.ValidateReorder(items); err != nil {
		return err
	}

	course, err := ctrl.authorizeCourseEdit(user, courseID)
	if err != nil {
		return err
	}

	// Judul + slug final dihitung SEKALI lalu dikirim ke remote apa adanya —
	// dua sisi tidak boleh menggenerate suffix masing-masing
	plan, err := chapterService.PlanReorder(ctrl.DB, course, items)
	if err != nil {
		return err
	}
	remoteItems := make([]gateway.ReorderItem, 0, len(plan))
	for _, p := range plan {
		remoteItems = append(remoteItems, gateway.ReorderItem{
			ID:    p.ID,
			Order: p.Order,
			Title: p.Title,
			Slug:  p.Slug,
		})
	}

	if _, err := ctrl.Gateway.ReorderChapters(c.Context(), user.ID, course.ID, remoteItems); err != nil {
		return err
	}

	reordered, err := chapterService.ApplyReorder(ctrl.DB, plan)
	if err != nil {
		return err
	}

	resp := make([]chapterDTO.ChapterResponse, 0, len(reordered))
	for i := range reordered {
		resp = append(resp, toChapterResponse(&reordered[i]))
	}
	return helper.JsonUpdated(c, "Urutan chapter berhasil diperbarui", resp)
}

// ==========================================
// ✅ DELETE /api/chapters/:id
// ==========================================
func (ctrl *ChapterController) DeleteChapter(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	chapterID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter id")
	}

	chapter, err := ctrl.authorizeChapterEdit(user, chapterID)
	if err != nil {
		return err
	}
	course, err := courseService.FindByID(ctrl.DB, chapter.CourseID)
	if err != nil {
		return err
	}

	if err := ctrl.Gateway.DeleteChapter(c.Context(), user.ID, chapter.ID); err != nil {
		return err
	}
	if err := chapterService.Delete(ctrl.DB, course, chapter.ID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Chapter berhasil dihapus", fiber.Map{"id": chapter.ID})
}

// ==================================================
// ✅ GET /api/courses/:courseId/chapters (read lokal)
// ==================================================
func (ctrl *ChapterController) ListChapters(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var chapters []chapterModel.Chapter
	if err := ctrl.DB.Where("course_id = ?", courseID).
		Order(`"order" ASC`).Find(&chapters).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch chapters")
	}

	resp := make([]chapterDTO.ChapterResponse, 0, len(chapters))
	for i := range chapters {
		resp = append(resp, toChapterResponse(&chapters[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

/* =========================================================
   GUARDS & MAPPERS
   ========================================================= */

func (ctrl *ChapterController) authorizeCourseEdit(user helperAuth.AuthUser, courseID uuid.UUID) (*courseModel.Course, error) {
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

func (ctrl *ChapterController) authorizeChapterEdit(user helperAuth.AuthUser, chapterID uuid.UUID) (*chapterModel.Chapter, error) {
	owns, err := access.ValidateChapterOwnership(ctrl.DB, user.ID, user.Role, chapterID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Chapter not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check ownership")
	}
	if !owns {
		return nil, fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not own this chapter")
	}

	var chapter chapterModel.Chapter
	if err := ctrl.DB.First(&chapter, "id = ?", chapterID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Chapter not found")
	}

	course, err := courseService.FindByID(ctrl.DB, chapter.CourseID)
	if err != nil {
		return nil, err
	}
	if !courseService.CanEditContent(course.Status, user.Role) {
		return nil, fiber.NewError(fiber.StatusForbidden,
			"Course is not editable in current status: "+string(course.Status))
	}
	return &chapter, nil
}

func toChapterResponse(ch *chapterModel.Chapter) chapterDTO.ChapterResponse {
	return chapterDTO.ChapterResponse{
		ID:       ch.ID,
		Title:    ch.Title,
		Slug:     ch.Slug,
		Order:    ch.Order,
		CourseID: ch.CourseID,
	}
}
