package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	courseModel "esta_backend/internals/features/courses/course/model"
	loveModel "esta_backend/internals/features/engagement/love/model"
	userModel "esta_backend/internals/features/users/model"
)

func setupDB(t *testing.T) (*gorm.DB, *courseModel.Course) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.Teacher{}, &courseModel.Course{},
		&loveModel.CourseLove{}, &loveModel.UserLove{},
	))

	teacher := userModel.Teacher{AuthID: "auth-1", Name: "Budi", Username: "budi"}
	require.NoError(t, db.Create(&teacher).Error)
	course := courseModel.Course{
		Title: "Belajar Go", Slug: "belajar-go-budi",
		Level: courseModel.LevelBeginner, Status: courseModel.StatusPublished,
		License: "STANDARD", TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&course).Error)
	return db, &course
}

func TestLoveCourse_DuplicateConflict(t *testing.T) {
	db, course := setupDB(t)

	_, err := LoveCourse(db, "auth-student", "student", course.ID)
	require.NoError(t, err)

	_, err = LoveCourse(db, "auth-student", "student", course.ID)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	count, err := CountCourseLoves(db, course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnloveCourse(t *testing.T) {
	db, course := setupDB(t)

	_, err := LoveCourse(db, "auth-student", "student", course.ID)
	require.NoError(t, err)
	require.NoError(t, UnloveCourse(db, "auth-student", course.ID))

	// Unlove dua kali → 404
	err = UnloveCourse(db, "auth-student", course.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestLoveUser(t *testing.T) {
	db, _ := setupDB(t)

	_, err := LoveUser(db, "auth-a", "student", "auth-b")
	require.NoError(t, err)

	// Diri sendiri
	_, err = LoveUser(db, "auth-a", "student", "auth-a")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.(*fiber.Error).Code)

	// Duplikat
	_, err = LoveUser(db, "auth-a", "student", "auth-b")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, err.(*fiber.Error).Code)
}
