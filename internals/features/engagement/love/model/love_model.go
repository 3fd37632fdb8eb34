// internals/features/engagement/love/model/love_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
)

type CourseLove struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID   string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_course_loves_auth_course" json:"authId"`
	UserRole string    `gorm:"type:varchar(10);not null" json:"userRole"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_course_loves_auth_course" json:"courseId"`

	Course *courseModel.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (CourseLove) TableName() string { return "course_loves" }

func (cl *CourseLove) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}

type UserLove struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID      string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_user_loves_auth_loved" json:"authId"`
	UserRole    string    `gorm:"type:varchar(10);not null" json:"userRole"`
	LovedUserID string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_user_loves_auth_loved" json:"lovedUserId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (UserLove) TableName() string { return "user_loves" }

func (ul *UserLove) BeforeCreate(tx *gorm.DB) error {
	if ul.ID == uuid.Nil {
		ul.ID = uuid.New()
	}
	return nil
}
