// internals/features/courses/chapter/model/chapter_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
)

// Chapter: order zero-based dan unik per course; title selalu berbentuk
// "Chapter {order+1}: {rawTitle}" dan slug
// "{courseSlug}-chapter-{order+1}-{suffix}". Keduanya dijaga service
// reorder/renumber, bukan oleh caller.
type Chapter struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title string    `gorm:"type:varchar(160);not null" json:"title"`
	Slug  string    `gorm:"type:varchar(220);not null;uniqueIndex" json:"slug"`
	Order int       `gorm:"column:order;not null;default:0;index:idx_chapters_course_order" json:"order"`

	CourseID uuid.UUID           `gorm:"type:uuid;not null;index:idx_chapters_course_order" json:"courseId"`
	Course   *courseModel.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Chapter) TableName() string { return "chapters" }

func (ch *Chapter) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	return nil
}
