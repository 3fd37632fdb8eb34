// internals/features/courses/course/service/course_service.go
//
// Jembatan antara representasi remote (gateway.CourseDTO) dan cache lokal,
// plus enrichment response (totalChapters/totalLessons/statusDescription).
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chapterModel "esta_backend/internals/features/courses/chapter/model"
	"esta_backend/internals/features/courses/course/dto"
	courseModel "esta_backend/internals/features/courses/course/model"
	"esta_backend/internals/features/courses/gateway"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
)

// MirrorFromRemote menulis hasil mutasi remote ke cache lokal (upsert by id)
// supaya read-after-write konsisten tanpa menunggu sinkronisasi.
func MirrorFromRemote(db *gorm.DB, remote *gateway.CourseDTO) (*courseModel.Course, error) {
	course := courseModel.Course{
		ID:          remote.ID,
		Title:       remote.Title,
		Slug:        remote.Slug,
		Description: remote.Description,
		Thumbnail:   remote.Thumbnail,
		Price:       remote.Price,
		IsFree:      remote.IsFree,
		Level:       courseModel.CourseLevel(remote.Level),
		Status:      courseModel.CourseStatus(remote.Status),
		License:     remote.License,
		TeacherID:   remote.TeacherID,
	}
	if course.License == "" {
		course.License = "STANDARD"
	}
	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByID mengambil course dari cache lokal.
func FindByID(db *gorm.DB, id any) (*courseModel.Course, error) {
	var course courseModel.Course
	if err := db.Preload("Teacher").First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return nil, err
	}
	return &course, nil
}

// FindBySlug idem, untuk halaman publik.
func FindBySlug(db *gorm.DB, slug string) (*courseModel.Course, error) {
	var course courseModel.Course
	if err := db.Preload("Teacher").First(&course, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return nil, err
	}
	return &course, nil
}

// Enrich membentuk response course dengan agregat konten dari cache lokal.
func Enrich(db *gorm.DB, course *courseModel.Course) (*dto.CourseResponse, error) {
	var totalChapters int64
	if err := db.Model(&chapterModel.Chapter{}).
		Where("course_id = ?", course.ID).Count(&totalChapters).Error; err != nil {
		return nil, err
	}

	var totalLessons int64
	if err := db.Model(&lessonModel.Lesson{}).
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("chapters.course_id = ?", course.ID).
		Count(&totalLessons).Error; err != nil {
		return nil, err
	}

	resp := &dto.CourseResponse{
		ID:                course.ID,
		Title:             course.Title,
		Slug:              course.Slug,
		Description:       course.Description,
		Thumbnail:         course.Thumbnail,
		Price:             course.Price,
		IsFree:            course.IsFree,
		Level:             string(course.Level),
		Status:            string(course.Status),
		License:           course.License,
		TeacherID:         course.TeacherID,
		TotalChapters:     totalChapters,
		TotalLessons:      totalLessons,
		StatusDescription: StatusDescription(course.Status),
		CreatedAt:         course.CreatedAt,
		UpdatedAt:         course.UpdatedAt,
	}
	if course.Teacher != nil {
		resp.TeacherName = course.Teacher.Name
	}
	return resp, nil
}

// EnrichRemote: varian untuk DTO gateway yang belum/tidak ada di cache
// (list milik teacher). Agregat tetap dihitung dari cache lokal.
func EnrichRemote(db *gorm.DB, remote *gateway.CourseDTO) (*dto.CourseResponse, error) {
	course := courseModel.Course{
		ID:          remote.ID,
		Title:       remote.Title,
		Slug:        remote.Slug,
		Description: remote.Description,
		Thumbnail:   remote.Thumbnail,
		Price:       remote.Price,
		IsFree:      remote.IsFree,
		Level:       courseModel.CourseLevel(remote.Level),
		Status:      courseModel.CourseStatus(remote.Status),
		License:     remote.License,
		TeacherID:   remote.TeacherID,
		CreatedAt:   remote.CreatedAt,
		UpdatedAt:   remote.UpdatedAt,
	}
	return Enrich(db, &course)
}
