package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	chapterModel "esta_backend/internals/features/courses/chapter/model"
	courseModel "esta_backend/internals/features/courses/course/model"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	userModel "esta_backend/internals/features/users/model"
)

func setupDB(t *testing.T) (*gorm.DB, *chapterModel.Chapter) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.Teacher{}, &courseModel.Course{},
		&chapterModel.Chapter{}, &lessonModel.Lesson{},
	))

	teacher := userModel.Teacher{AuthID: "auth-1", Name: "Budi", Username: "budi"}
	require.NoError(t, db.Create(&teacher).Error)
	course := courseModel.Course{
		Title: "Belajar Go", Slug: "belajar-go-budi",
		Level: courseModel.LevelBeginner, Status: courseModel.StatusDraft,
		License: "STANDARD", TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&course).Error)
	chapter := chapterModel.Chapter{
		Title: "Chapter 1: Intro", Slug: "belajar-go-budi-chapter-1-ab3d",
		Order: 0, CourseID: course.ID,
	}
	require.NoError(t, db.Create(&chapter).Error)
	return db, &chapter
}

func TestCreate_RemovesPlaceholder(t *testing.T) {
	db, chapter := setupDB(t)

	// Placeholder: title dan playbackId dua-duanya kosong
	placeholder := lessonModel.Lesson{Title: "", PlaybackID: "", Order: 0, ChapterID: chapter.ID}
	require.NoError(t, db.Create(&placeholder).Error)

	lesson, err := Create(db, chapter.ID, CreateInput{Title: "Hello World"})
	require.NoError(t, err)
	assert.Equal(t, 0, lesson.Order, "placeholder hilang → lesson riil mulai dari 0")

	var count int64
	require.NoError(t, db.Model(&lessonModel.Lesson{}).
		Where("chapter_id = ?", chapter.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var gone lessonModel.Lesson
	err = db.First(&gone, "id = ?", placeholder.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreate_KeepsRealLessons(t *testing.T) {
	db, chapter := setupDB(t)

	// Lesson dengan video tapi tanpa judul BUKAN placeholder
	withVideo := lessonModel.Lesson{Title: "", PlaybackID: "uid-123", Order: 0, ChapterID: chapter.ID}
	require.NoError(t, db.Create(&withVideo).Error)

	lesson, err := Create(db, chapter.ID, CreateInput{Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, 1, lesson.Order)

	var still lessonModel.Lesson
	assert.NoError(t, db.First(&still, "id = ?", withVideo.ID).Error)
}

func TestCreate_PreviewWithoutVideoRejected(t *testing.T) {
	db, chapter := setupDB(t)

	_, err := Create(db, chapter.ID, CreateInput{Title: "Hello", IsPreview: true})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, "Project must be saved before enabling preview", fe.Message)
}

func TestUpdate_PreviewInvariant(t *testing.T) {
	db, chapter := setupDB(t)

	lesson, err := Create(db, chapter.ID, CreateInput{Title: "Hello"})
	require.NoError(t, err)

	// Tanpa video → preview ditolak
	on := true
	_, err = Update(db, lesson.ID, UpdateInput{IsPreview: &on})
	require.Error(t, err)
	assert.Equal(t, ErrPreviewWithoutVideo, err)

	// Pasang video dulu → preview boleh
	_, err = AttachPlayback(db, lesson.ID, "uid-123", 90)
	require.NoError(t, err)

	updated, err := Update(db, lesson.ID, UpdateInput{IsPreview: &on})
	require.NoError(t, err)
	assert.True(t, updated.IsPreview)
	assert.Equal(t, "uid-123", updated.PlaybackID)
	assert.Equal(t, 90, updated.Duration)
}

func TestUpdate_UnknownLesson(t *testing.T) {
	db, _ := setupDB(t)
	title := "X"
	_, err := Update(db, uuid.New(), UpdateInput{Title: &title})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
