// internals/features/courses/course/dto/course_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================
   REQUEST
   ========================= */

type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"max=5000"`
	Price       int64    `json:"price" validate:"gte=0"`
	IsFree      bool     `json:"isFree"`
	Level       string   `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	CategoryIDs []string `json:"categoryIds" validate:"dive,uuid4"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Thumbnail   *string  `json:"thumbnail" validate:"omitempty,url"`
	Price       *int64   `json:"price" validate:"omitempty,gte=0"`
	IsFree      *bool    `json:"isFree"`
	Level       *string  `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	CategoryIDs []string `json:"categoryIds" validate:"omitempty,dive,uuid4"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"required,dive,min=1,max=40"`
}

/* =========================
   RESPONSE (enriched)
   ========================= */

type CourseResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Thumbnail   *string   `json:"thumbnail"`
	Price       int64     `json:"price"`
	IsFree      bool      `json:"isFree"`
	Level       string    `json:"level"`
	Status      string    `json:"status"`
	License     string    `json:"license"`
	TeacherID   uuid.UUID `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`

	// Enrichment (dihitung BFF, bukan dari course-service)
	TotalChapters     int64  `json:"totalChapters"`
	TotalLessons      int64  `json:"totalLessons"`
	StatusDescription string `json:"statusDescription"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
