// internals/features/dashboard/service/stats_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
	paymentModel "esta_backend/internals/features/payment/model"
	userModel "esta_backend/internals/features/users/model"
)

type CategoryStat struct {
	CategoryID    uuid.UUID `json:"categoryId"`
	Name          string    `json:"name"`
	TotalCourses  int64     `json:"totalCourses"`
	TotalTeachers int64     `json:"totalTeachers"`
}

type OverviewStats struct {
	TotalPublishedCourses int64          `json:"totalPublishedCourses"`
	TotalTeachers         int64          `json:"totalTeachers"`
	TotalStudents         int64          `json:"totalStudents"`
	TotalEnrollments      int64          `json:"totalEnrollments"`
	Categories            []CategoryStat `json:"categories"`
}

// CategoryStats: agregasi per kategori induk; course di kategori anak ikut
// dihitung ke induknya. Hanya course PUBLISHED yang masuk hitungan.
func CategoryStats(db *gorm.DB) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := db.Raw(`
		SELECT p.id AS category_id,
		       p.name,
		       COUNT(DISTINCT cc.course_id) AS total_courses,
		       COUNT(DISTINCT co.teacher_id) AS total_teachers
		FROM categories p
		LEFT JOIN categories c ON c.parent_id = p.id OR c.id = p.id
		LEFT JOIN course_categories cc ON cc.category_id = c.id
		LEFT JOIN courses co ON co.id = cc.course_id AND co.status = 'PUBLISHED'
		WHERE p.parent_id IS NULL
		GROUP BY p.id, p.name
		ORDER BY total_courses DESC
	`).Scan(&stats).Error
	return stats, err
}

// Overview menggabungkan angka global + breakdown kategori.
func Overview(db *gorm.DB) (*OverviewStats, error) {
	stats := &OverviewStats{}

	if err := db.Model(&courseModel.Course{}).
		Where("status = ?", courseModel.StatusPublished).
		Count(&stats.TotalPublishedCourses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&userModel.Teacher{}).Count(&stats.TotalTeachers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&userModel.Student{}).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&paymentModel.Enrollment{}).Count(&stats.TotalEnrollments).Error; err != nil {
		return nil, err
	}

	categories, err := CategoryStats(db)
	if err != nil {
		return nil, err
	}
	stats.Categories = categories
	return stats, nil
}
