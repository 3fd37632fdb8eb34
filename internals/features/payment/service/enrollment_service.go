// internals/features/payment/service/enrollment_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "esta_backend/internals/features/payment/model"
)

// EnrollmentChecker cek lokal dulu (hasil webhook settlement), baru fallback
// ke payment-service. Dua-duanya miss → false (fail-closed).
type EnrollmentChecker struct {
	DB     *gorm.DB
	Remote *EnrollmentGateway
}

func NewEnrollmentChecker(db *gorm.DB) *EnrollmentChecker {
	return &EnrollmentChecker{DB: db, Remote: NewEnrollmentGateway()}
}

func (ec *EnrollmentChecker) IsEnrolled(authID string, courseID uuid.UUID) bool {
	var count int64
	err := ec.DB.Model(&paymentModel.Enrollment{}).
		Where("auth_id = ? AND course_id = ?", authID, courseID).
		Count(&count).Error
	if err == nil && count > 0 {
		return true
	}
	if ec.Remote == nil {
		return false
	}
	return ec.Remote.IsEnrolled(authID, courseID)
}

// ListEnrolledCourses untuk halaman "my courses".
func ListEnrolledCourses(db *gorm.DB, authID string) ([]paymentModel.Enrollment, error) {
	var enrollments []paymentModel.Enrollment
	err := db.Preload("Course").Preload("Course.Teacher").
		Where("auth_id = ?", authID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
