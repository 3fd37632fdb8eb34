// internals/features/courses/lesson/dto/lesson_dto.go
package dto

import "github.com/google/uuid"

type CreateLessonRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=120"`
	IsPreview bool   `json:"isPreview"`
}

type UpdateLessonRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=120"`
	Order     *int    `json:"order" validate:"omitempty,gte=0"`
	IsPreview *bool   `json:"isPreview"`
}

type LessonResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Order      int       `json:"order"`
	PlaybackID string    `json:"playbackId"`
	Duration   int       `json:"duration"`
	IsPreview  bool      `json:"isPreview"`
	ChapterID  uuid.UUID `json:"chapterId"`
}
