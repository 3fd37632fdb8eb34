// internals/features/engagement/notification/controller/notification_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "esta_backend/internals/features/engagement/notification/model"
	notifService "esta_backend/internals/features/engagement/notification/service"
	helper "esta_backend/internals/helpers"
	helperAuth "esta_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ==========================
// ✅ GET /api/notifications
// ==========================
// Filter: ?type=COURSE_LIKE&unread=true&limit=20
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	query := ctrl.DB.Where("auth_id = ?", user.ID)
	if t := c.Query("type"); t != "" {
		if !notifModel.NotificationType(t).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid notification type: "+t)
		}
		query = query.Where("type = ?", t)
	}
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := query.Model(&notifModel.Notification{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var notifications []notifModel.Notification
	if err := query.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&notifications).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notifications")
	}
	return helper.JsonList(c, "ok", notifications, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// ======================================
// ✅ GET /api/notifications/unread-count
// ======================================
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	var count int64
	if err := ctrl.DB.Model(&notifModel.Notification{}).
		Where("auth_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count notifications")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"count": count})
}

// ======================================
// ✅ PATCH /api/notifications/:id/read
// ======================================
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification id")
	}

	res := ctrl.DB.Model(&notifModel.Notification{}).
		Where("id = ? AND auth_id = ?", id, user.ID).
		Update("is_read", true)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update notification")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Notification not found")
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai terbaca", fiber.Map{"id": id})
}

// ======================================
// ✅ PATCH /api/notifications/read-all
// ======================================
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}

	res := ctrl.DB.Model(&notifModel.Notification{}).
		Where("auth_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update notifications")
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai terbaca", fiber.Map{"updated": res.RowsAffected})
}

// ==================================
// ✅ DELETE /api/notifications/:id
// ==================================
func (ctrl *NotificationController) Delete(c *fiber.Ctx) error {
	user, err := helperAuth.MustAuthUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification id")
	}

	res := ctrl.DB.Where("id = ? AND auth_id = ?", id, user.ID).
		Delete(&notifModel.Notification{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete notification")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Notification not found")
	}
	return helper.JsonDeleted(c, "Notifikasi dihapus", fiber.Map{"id": id})
}

// ==========================================
// ✅ POST /api/admin/notifications (admin)
// ==========================================
// Broadcast pengumuman sistem ke satu user atau semua user yang punya profil.
func (ctrl *NotificationController) Broadcast(c *fiber.Ctx) error {
	var body struct {
		AuthID  string `json:"authId"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil || body.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	if body.AuthID != "" {
		notifService.NotifySystemAnnouncement(ctrl.DB, body.AuthID, body.Message)
		return helper.JsonCreated(c, "Pengumuman terkirim", fiber.Map{"recipients": 1})
	}

	var authIDs []string
	if err := ctrl.DB.Table("students").Pluck("auth_id", &authIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve recipients")
	}
	var teacherIDs []string
	if err := ctrl.DB.Table("teachers").Pluck("auth_id", &teacherIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve recipients")
	}
	authIDs = append(authIDs, teacherIDs...)

	for _, id := range authIDs {
		notifService.NotifySystemAnnouncement(ctrl.DB, id, body.Message)
	}
	return helper.JsonCreated(c, "Pengumuman terkirim", fiber.Map{"recipients": len(authIDs)})
}
