// internals/features/courses/lesson/model/lesson_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chapterModel "esta_backend/internals/features/courses/chapter/model"
)

// Lesson: PlaybackID kosong sampai upload video selesai (diisi webhook).
// Invariant: IsPreview hanya boleh true kalau PlaybackID sudah terisi.
// Placeholder lesson = Title=="" dan PlaybackID=="" (slot chapter baru).
type Lesson struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(160);not null;default:''" json:"title"`
	Order      int       `gorm:"column:order;not null;default:0;index:idx_lessons_chapter_order" json:"order"`
	PlaybackID string    `gorm:"type:varchar(100);not null;default:''" json:"playbackId"`
	Duration   int       `gorm:"not null;default:0" json:"duration"`
	IsPreview  bool      `gorm:"not null;default:false" json:"isPreview"`

	ChapterID uuid.UUID             `gorm:"type:uuid;not null;index:idx_lessons_chapter_order" json:"chapterId"`
	Chapter   *chapterModel.Chapter `gorm:"foreignKey:ChapterID" json:"chapter,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lesson) TableName() string { return "lessons" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsPlaceholder: slot kosong yang dibuat saat chapter baru dibuat.
func (l Lesson) IsPlaceholder() bool {
	return l.Title == "" && l.PlaybackID == ""
}
