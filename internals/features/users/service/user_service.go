// internals/features/users/service/user_service.go
package service

import (
	"errors"

	"gorm.io/gorm"

	userModel "esta_backend/internals/features/users/model"
)

var ErrTeacherNotFound = errors.New("teacher not found")

// FindTeacherByAuthID menukar "paspor" (authId token) dengan profil Teacher.
func FindTeacherByAuthID(db *gorm.DB, authID string) (*userModel.Teacher, error) {
	var t userModel.Teacher
	if err := db.Where("auth_id = ?", authID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return &t, nil
}

// DisplayName mencari nama tampilan dari profil teacher atau student.
// Fallback "Someone" kalau keduanya tidak ada (dipakai pesan notifikasi).
func DisplayName(db *gorm.DB, authID string) string {
	var t userModel.Teacher
	if err := db.Select("name").Where("auth_id = ?", authID).First(&t).Error; err == nil && t.Name != "" {
		return t.Name
	}
	var s userModel.Student
	if err := db.Select("name").Where("auth_id = ?", authID).First(&s).Error; err == nil && s.Name != "" {
		return s.Name
	}
	return "Someone"
}
