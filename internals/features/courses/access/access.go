// internals/features/courses/access/access.go
//
// Evaluator access-control untuk hirarki Course → Chapter → Lesson.
// WAJIB dipanggil sebelum mutasi diteruskan ke course-service: remote
// service tidak melakukan otorisasi sendiri dan mempercayai header
// identitas dari BFF, jadi cek yang hilang di sini = bypass otorisasi.
package access

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"esta_backend/internals/constants"
	chapterModel "esta_backend/internals/features/courses/chapter/model"
	courseModel "esta_backend/internals/features/courses/course/model"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	userModel "esta_backend/internals/features/users/model"
)

// ErrNotFound: ada mata rantai ownership yang hilang (lesson/chapter/course).
// Caller harus menjawab 404, BUKAN 403 — dua hal yang berbeda.
var ErrNotFound = errors.New("resource not found")

// ValidateCourseOwnership: admin selalu boleh; teacher boleh jika profil
// Teacher dari authID memiliki course tersebut. Course tidak ada → ErrNotFound.
func ValidateCourseOwnership(db *gorm.DB, authID, role string, courseID uuid.UUID) (bool, error) {
	var course courseModel.Course
	if err := db.Select("id", "teacher_id").First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return ownsCourse(db, authID, role, &course)
}

// ownsCourse membandingkan profil teacher (hasil tukar paspor) dengan
// course.TeacherID. Dipisah supaya caller yang sudah memegang Course
// tidak query dua kali.
func ownsCourse(db *gorm.DB, authID, role string, course *courseModel.Course) (bool, error) {
	// 1) Admin selalu bisa akses
	if role == constants.RoleAdmin {
		return true, nil
	}
	// 2) Selain admin, harus teacher
	if role != constants.RoleTeacher {
		return false, nil
	}
	// 3) Tukar paspor → profil teacher
	var teacher userModel.Teacher
	if err := db.Select("id").Where("auth_id = ?", authID).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // user ini bukan teacher
		}
		return false, err
	}
	// 4) Validasi kepemilikan
	return course.TeacherID == teacher.ID, nil
}

// ValidateChapterOwnership resolve Chapter → Course lalu delegasi.
func ValidateChapterOwnership(db *gorm.DB, authID, role string, chapterID uuid.UUID) (bool, error) {
	var chapter chapterModel.Chapter
	if err := db.Select("id", "course_id").First(&chapter, "id = ?", chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return ValidateCourseOwnership(db, authID, role, chapter.CourseID)
}

// ValidateLessonOwnership resolve rantai penuh Lesson → Chapter → Course.
func ValidateLessonOwnership(db *gorm.DB, authID, role string, lessonID uuid.UUID) (bool, error) {
	var lesson lessonModel.Lesson
	if err := db.Select("id", "chapter_id").First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return ValidateChapterOwnership(db, authID, role, lesson.ChapterID)
}

// EnrollmentChecker: kontrak sempit ke payment-service. Implementasi WAJIB
// fail-closed: error apapun dianggap tidak terdaftar, tidak pernah panic/err.
type EnrollmentChecker interface {
	IsEnrolled(authID string, courseID uuid.UUID) bool
}

// CanReadCourse menentukan boleh-tidaknya aktor MEMBACA course.
//   - PUBLISHED → semua orang.
//   - Anonim → hanya PUBLISHED.
//   - Admin → selalu.
//   - Teacher pemilik → selalu.
//   - Sisanya → cek enrollment remote; ARCHIVED tetap ditolak.
func CanReadCourse(db *gorm.DB, checker EnrollmentChecker, authID, role string, course *courseModel.Course) (bool, error) {
	if course.Status == courseModel.StatusPublished {
		return true, nil
	}
	if authID == "" || role == "" {
		return false, nil
	}
	if role == constants.RoleAdmin {
		return true, nil
	}
	if role == constants.RoleTeacher {
		owns, err := ownsCourse(db, authID, role, course)
		if err != nil {
			return false, err
		}
		if owns {
			return true, nil
		}
	}
	if course.Status == courseModel.StatusArchived {
		return false, nil
	}
	if checker == nil {
		return false, nil
	}
	return checker.IsEnrolled(authID, course.ID), nil
}
