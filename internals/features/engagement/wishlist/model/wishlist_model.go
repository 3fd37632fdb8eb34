// internals/features/engagement/wishlist/model/wishlist_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
)

type Wishlist struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID   string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_wishlists_auth_course" json:"authId"`
	UserRole string    `gorm:"type:varchar(10);not null" json:"userRole"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_wishlists_auth_course" json:"courseId"`

	Course *courseModel.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Wishlist) TableName() string { return "wishlists" }

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
