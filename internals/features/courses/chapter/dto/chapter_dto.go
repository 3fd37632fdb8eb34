// internals/features/courses/chapter/dto/chapter_dto.go
package dto

import "github.com/google/uuid"

type CreateChapterRequest struct {
	Title string `json:"title" validate:"required,min=1,max=80"`
}

type UpdateChapterRequest struct {
	Title string `json:"title" validate:"required,min=1,max=80"`
}

type ReorderChapterItem struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Order int       `json:"order" validate:"gte=0"`
}

type ReorderChaptersRequest struct {
	Chapters []ReorderChapterItem `json:"chapters" validate:"required,min=1,dive"`
}

type ChapterResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Order    int       `json:"order"`
	CourseID uuid.UUID `json:"courseId"`
}
