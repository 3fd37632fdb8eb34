// internals/features/courses/course/service/status_service.go
//
// Mesin status lifecycle course. Semua mutasi status & semua mutasi konten
// (chapter/lesson) harus lewat gerbang di file ini.
package service

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"esta_backend/internals/constants"
	courseModel "esta_backend/internals/features/courses/course/model"
)

// validTransitions: peta transisi yang diizinkan. Selain ini = invalid.
var validTransitions = map[courseModel.CourseStatus][]courseModel.CourseStatus{
	courseModel.StatusDraft:         {courseModel.StatusIncomplete},
	courseModel.StatusIncomplete:    {courseModel.StatusPendingReview},
	courseModel.StatusPendingReview: {courseModel.StatusFollowedUp, courseModel.StatusApproved, courseModel.StatusRejected},
	courseModel.StatusFollowedUp:    {courseModel.StatusPendingReview},
	courseModel.StatusRejected:      {courseModel.StatusPendingReview},
	courseModel.StatusApproved:      {courseModel.StatusPublished},
	courseModel.StatusPublished:     {courseModel.StatusUnpublished, courseModel.StatusArchived},
	courseModel.StatusUnpublished:   {courseModel.StatusPublished, courseModel.StatusArchived},
	courseModel.StatusArchived:      {}, // terminal
}

// adminOnlyTransitions: hasil review & kontrol visibilitas publik hanya
// boleh dilakukan admin, bukan teacher pemilik.
var adminOnlyTransitions = map[courseModel.CourseStatus]map[courseModel.CourseStatus]bool{
	courseModel.StatusPendingReview: {
		courseModel.StatusFollowedUp: true,
		courseModel.StatusApproved:   true,
		courseModel.StatusRejected:   true,
	},
	courseModel.StatusApproved: {
		courseModel.StatusPublished: true,
	},
	courseModel.StatusPublished: {
		courseModel.StatusUnpublished: true,
		courseModel.StatusArchived:    true,
	},
	courseModel.StatusUnpublished: {
		courseModel.StatusPublished: true,
		courseModel.StatusArchived:  true,
	},
}

// editableStatuses: teacher hanya boleh mengubah konten course di status ini.
// Di luar ini course sedang direview / sudah publik → konten dibekukan.
var editableStatuses = map[courseModel.CourseStatus]bool{
	courseModel.StatusDraft:      true,
	courseModel.StatusIncomplete: true,
	courseModel.StatusFollowedUp: true,
	courseModel.StatusRejected:   true,
}

// CanEditContent: gerbang mutasi konten (update course, CRUD chapter/lesson).
// Admin bypass penuh — bisa intervensi di status apapun.
func CanEditContent(status courseModel.CourseStatus, role string) bool {
	if role == constants.RoleAdmin {
		return true
	}
	return editableStatuses[status]
}

// ValidateTransition mengecek legalitas transisi from→to untuk role pemanggil.
// Return *fiber.Error supaya controller tinggal meneruskan.
func ValidateTransition(from, to courseModel.CourseStatus, role string) error {
	if !to.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid course status: %s", to))
	}
	allowed := false
	for _, next := range validTransitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Invalid status transition from %s to %s", from, to))
	}
	if adminOnlyTransitions[from][to] && role != constants.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: only admin can perform this status change")
	}
	return nil
}

// StatusDescription: teks enrichment untuk response (lihat StatusDescriptions).
func StatusDescription(status courseModel.CourseStatus) string {
	return courseModel.StatusDescriptions[status]
}
