// file: internals/route/details/course_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"esta_backend/internals/constants"
	chapterController "esta_backend/internals/features/courses/chapter/controller"
	courseController "esta_backend/internals/features/courses/course/controller"
	"esta_backend/internals/features/courses/gateway"
	lessonController "esta_backend/internals/features/courses/lesson/controller"
	middlewareAuth "esta_backend/internals/middlewares/auth"
)

// ✅ Katalog publik + detail course (JWT opsional untuk cek akses)
func CoursePublicRoutes(api fiber.Router, db *gorm.DB, gw *gateway.Client) {
	course := courseController.NewCourseController(db, gw)
	chapter := chapterController.NewChapterController(db, gw)
	lesson := lessonController.NewLessonController(db, gw)

	api.Get("/courses", course.ListPublicCourses)
	api.Get("/courses/slug/:slug", course.GetCourseBySlug)
	api.Get("/courses/:id", course.GetCourseByID)
	api.Get("/courses/:courseId/chapters", chapter.ListChapters)
	api.Get("/chapters/:chapterId/lessons", lesson.ListLessons)

	// Lesson preview bebas diakses; non-preview butuh login + role
	api.Get("/lessons/:lessonId",
		middlewareAuth.AllowPreviewOr(db, constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent),
		lesson.GetLesson)
}

// ✅ Authoring konten (teacher/admin)
func CourseTeacherRoutes(api fiber.Router, db *gorm.DB, gw *gateway.Client) {
	course := courseController.NewCourseController(db, gw)
	chapter := chapterController.NewChapterController(db, gw)
	lesson := lessonController.NewLessonController(db, gw)

	api.Post("/courses", course.CreateCourse)
	api.Patch("/courses/:id", course.UpdateCourse)
	api.Patch("/courses/:id/status", course.UpdateCourseStatus)
	api.Put("/courses/:id/tags", course.UpdateCourseTags)
	api.Get("/dashboard/courses", course.ListMyCourses)

	api.Post("/courses/:courseId/chapters", chapter.CreateChapter)
	api.Put("/courses/:courseId/chapters/reorder", chapter.ReorderChapters)
	api.Patch("/chapters/:id", chapter.UpdateChapter)
	api.Delete("/chapters/:id", chapter.DeleteChapter)

	api.Post("/chapters/:chapterId/lessons", lesson.CreateLesson)
	api.Patch("/lessons/:id", lesson.UpdateLesson)
}
