// internals/features/engagement/notification/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	TypeCourseLike         NotificationType = "COURSE_LIKE"
	TypeCourseReview       NotificationType = "COURSE_REVIEW"
	TypeNewEnrollment      NotificationType = "NEW_ENROLLMENT"
	TypeCoursePublished    NotificationType = "COURSE_PUBLISHED"
	TypePaymentSuccess     NotificationType = "PAYMENT_SUCCESS"
	TypeSystemAnnouncement NotificationType = "SYSTEM_ANNOUNCEMENT"
)

func (t NotificationType) Valid() bool {
	switch t {
	case TypeCourseLike, TypeCourseReview, TypeNewEnrollment,
		TypeCoursePublished, TypePaymentSuccess, TypeSystemAnnouncement:
		return true
	}
	return false
}

type NotificationUrgency string

const (
	UrgencyLow    NotificationUrgency = "LOW"
	UrgencyNormal NotificationUrgency = "NORMAL"
	UrgencyHigh   NotificationUrgency = "HIGH"
)

type Notification struct {
	ID      uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID  string              `gorm:"type:varchar(64);not null;index" json:"authId"`
	Message string              `gorm:"type:text;not null" json:"message"`
	Type    NotificationType    `gorm:"type:varchar(30);not null" json:"type"`
	Urgency NotificationUrgency `gorm:"type:varchar(10);not null;default:NORMAL" json:"urgency"`
	IsRead  bool                `gorm:"not null;default:false" json:"isRead"`

	// Relasi opsional balik ke course / aktor pemicu.
	CourseID  *uuid.UUID `gorm:"type:uuid" json:"courseId,omitempty"`
	ActorID   *string    `gorm:"type:varchar(64)" json:"actorId,omitempty"`
	RelatedID *string    `gorm:"type:varchar(64)" json:"relatedId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
