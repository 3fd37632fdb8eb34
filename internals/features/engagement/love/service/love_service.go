// internals/features/engagement/love/service/love_service.go
package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	loveModel "esta_backend/internals/features/engagement/love/model"
)

// IsUniqueViolation: postgres 23505; fallback string match untuk sqlite
// yang dipakai di test.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key")
}

// LoveCourse menambah love; duplikat → ConflictError 409.
func LoveCourse(db *gorm.DB, authID, role string, courseID uuid.UUID) (*loveModel.CourseLove, error) {
	love := loveModel.CourseLove{AuthID: authID, UserRole: role, CourseID: courseID}
	if err := db.Create(&love).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "You already loved this course")
		}
		return nil, err
	}
	return &love, nil
}

func UnloveCourse(db *gorm.DB, authID string, courseID uuid.UUID) error {
	res := db.Where("auth_id = ? AND course_id = ?", authID, courseID).
		Delete(&loveModel.CourseLove{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Love not found")
	}
	return nil
}

func CountCourseLoves(db *gorm.DB, courseID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&loveModel.CourseLove{}).
		Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// LoveUser: love antar user (student → teacher favorit).
func LoveUser(db *gorm.DB, authID, role, lovedUserID string) (*loveModel.UserLove, error) {
	if authID == lovedUserID {
		return nil, fiber.NewError(fiber.StatusBadRequest, "You cannot love yourself")
	}
	love := loveModel.UserLove{AuthID: authID, UserRole: role, LovedUserID: lovedUserID}
	if err := db.Create(&love).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "You already loved this user")
		}
		return nil, err
	}
	return &love, nil
}

func UnloveUser(db *gorm.DB, authID, lovedUserID string) error {
	res := db.Where("auth_id = ? AND loved_user_id = ?", authID, lovedUserID).
		Delete(&loveModel.UserLove{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Love not found")
	}
	return nil
}
