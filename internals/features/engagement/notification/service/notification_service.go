// internals/features/engagement/notification/service/notification_service.go
//
// Konstruktor notifikasi. Semua pemanggil memakai pola best-effort:
// gagal insert hanya di-log, alur utama tidak pernah ikut gagal.
package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "esta_backend/internals/features/engagement/notification/model"
	userService "esta_backend/internals/features/users/service"
)

func create(db *gorm.DB, n notifModel.Notification) {
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat notifikasi %s untuk %s: %v", n.Type, n.AuthID, err)
	}
}

// NotifyCourseLike → ke teacher pemilik, saat course-nya di-love.
func NotifyCourseLike(db *gorm.DB, teacherAuthID, actorAuthID string, courseID uuid.UUID, courseTitle string) {
	if teacherAuthID == actorAuthID {
		return // tidak perlu notifikasi untuk aksi sendiri
	}
	actor := userService.DisplayName(db, actorAuthID)
	create(db, notifModel.Notification{
		AuthID:   teacherAuthID,
		Message:  fmt.Sprintf("%s liked your course \"%s\"", actor, courseTitle),
		Type:     notifModel.TypeCourseLike,
		Urgency:  notifModel.UrgencyLow,
		CourseID: &courseID,
		ActorID:  &actorAuthID,
	})
}

// NotifyNewEnrollment → ke teacher pemilik, saat ada student baru.
func NotifyNewEnrollment(db *gorm.DB, teacherAuthID, studentAuthID string, courseID uuid.UUID, courseTitle string) {
	student := userService.DisplayName(db, studentAuthID)
	create(db, notifModel.Notification{
		AuthID:   teacherAuthID,
		Message:  fmt.Sprintf("%s enrolled in your course \"%s\"", student, courseTitle),
		Type:     notifModel.TypeNewEnrollment,
		Urgency:  notifModel.UrgencyNormal,
		CourseID: &courseID,
		ActorID:  &studentAuthID,
	})
}

// NotifyCoursePublished → ke teacher pemilik, saat admin mem-publish.
func NotifyCoursePublished(db *gorm.DB, teacherAuthID string, courseID uuid.UUID, courseTitle string) {
	create(db, notifModel.Notification{
		AuthID:   teacherAuthID,
		Message:  fmt.Sprintf("Your course \"%s\" is now published", courseTitle),
		Type:     notifModel.TypeCoursePublished,
		Urgency:  notifModel.UrgencyHigh,
		CourseID: &courseID,
	})
}

// NotifyPaymentSuccess → ke pembeli, saat settlement masuk.
func NotifyPaymentSuccess(db *gorm.DB, buyerAuthID string, orderID string, totalAmount int64) {
	related := orderID
	create(db, notifModel.Notification{
		AuthID:    buyerAuthID,
		Message:   fmt.Sprintf("Payment for order %s (Rp%d) was successful. Happy learning!", orderID, totalAmount),
		Type:      notifModel.TypePaymentSuccess,
		Urgency:   notifModel.UrgencyHigh,
		RelatedID: &related,
	})
}

// NotifySystemAnnouncement dipakai endpoint admin broadcast.
func NotifySystemAnnouncement(db *gorm.DB, authID, message string) {
	create(db, notifModel.Notification{
		AuthID:  authID,
		Message: message,
		Type:    notifModel.TypeSystemAnnouncement,
		Urgency: notifModel.UrgencyNormal,
	})
}
