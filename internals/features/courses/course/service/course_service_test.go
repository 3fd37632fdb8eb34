package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	chapterModel "esta_backend/internals/features/courses/chapter/model"
	courseModel "esta_backend/internals/features/courses/course/model"
	"esta_backend/internals/features/courses/gateway"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	userModel "esta_backend/internals/features/users/model"
)

func setupDB(t *testing.T) (*gorm.DB, *userModel.Teacher) {
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
	return db, &teacher
}

func remoteCourse(teacherID uuid.UUID) *gateway.CourseDTO {
	return &gateway.CourseDTO{
		ID:        uuid.New(),
		Title:     "Belajar Go",
		Slug:      "belajar-go-budi",
		Price:     150000,
		Level:     "BEGINNER",
		Status:    "DRAFT",
		License:   "STANDARD",
		TeacherID: teacherID,
	}
}

func TestMirrorFromRemote_UpsertsById(t *testing.T) {
	db, teacher := setupDB(t)
	remote := remoteCourse(teacher.ID)

	course, err := MirrorFromRemote(db, remote)
	require.NoError(t, err)
	assert.Equal(t, remote.ID, course.ID)

	// Mutasi kedua dengan id sama → update, bukan duplikat
	remote.Title = "Belajar Go (Edisi Baru)"
	remote.Status = "INCOMPLETE"
	_, err = MirrorFromRemote(db, remote)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&courseModel.Course{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored courseModel.Course
	require.NoError(t, db.First(&stored, "id = ?", remote.ID).Error)
	assert.Equal(t, "Belajar Go (Edisi Baru)", stored.Title)
	assert.Equal(t, courseModel.StatusIncomplete, stored.Status)
}

func TestEnrich_CountsContentAndDescribesStatus(t *testing.T) {
	db, teacher := setupDB(t)

	course, err := MirrorFromRemote(db, remoteCourse(teacher.ID))
	require.NoError(t, err)

	ch1 := chapterModel.Chapter{Title: "Chapter 1: A", Slug: "s-chapter-1-aaaa", Order: 0, CourseID: course.ID}
	ch2 := chapterModel.Chapter{Title: "Chapter 2: B", Slug: "s-chapter-2-bbbb", Order: 1, CourseID: course.ID}
	require.NoError(t, db.Create(&ch1).Error)
	require.NoError(t, db.Create(&ch2).Error)
	require.NoError(t, db.Create(&lessonModel.Lesson{Title: "L1", Order: 0, ChapterID: ch1.ID}).Error)
	require.NoError(t, db.Create(&lessonModel.Lesson{Title: "L2", Order: 1, ChapterID: ch1.ID}).Error)
	require.NoError(t, db.Create(&lessonModel.Lesson{Title: "L3", Order: 0, ChapterID: ch2.ID}).Error)

	resp, err := Enrich(db, course)
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.TotalChapters)
	assert.EqualValues(t, 3, resp.TotalLessons)
	assert.Equal(t, courseModel.StatusDescriptions[courseModel.StatusDraft], resp.StatusDescription)
}

func TestFindByID_NotFound(t *testing.T) {
	db, _ := setupDB(t)
	_, err := FindByID(db, uuid.New())
	require.Error(t, err)
}
