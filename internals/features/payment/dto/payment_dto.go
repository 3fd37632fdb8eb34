// internals/features/payment/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	CourseID uuid.UUID `json:"courseId" validate:"required"`
}

type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
	TotalAmount int64  `json:"totalAmount"`
}

type EnrollmentCheckResponse struct {
	IsEnrolled bool `json:"isEnrolled"`
}

type EnrolledCourseResponse struct {
	CourseID    uuid.UUID `json:"courseId"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Thumbnail   *string   `json:"thumbnail"`
	TeacherName string    `json:"teacherName,omitempty"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}
