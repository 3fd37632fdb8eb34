// internals/features/courses/lesson/service/lesson_service.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	lessonModel "esta_backend/internals/features/courses/lesson/model"
)

// ErrPreviewWithoutVideo: isPreview=true hanya sah kalau lesson sudah punya
// video (playbackId terisi).
var ErrPreviewWithoutVideo = fiber.NewError(fiber.StatusBadRequest,
	"Project must be saved before enabling preview")

// ValidatePreview menjaga invariant preview terhadap nilai playbackId FINAL
// (setelah update diterapkan).
func ValidatePreview(isPreview bool, playbackID string) error {
	if isPreview && playbackID == "" {
		return ErrPreviewWithoutVideo
	}
	return nil
}

type CreateInput struct {
	ID        uuid.UUID // id dari course-service; uuid.Nil → generate sendiri
	Title     string
	Order     *int
	IsPreview bool
}

// Create menaruh lesson baru di akhir chapter. Placeholder (row kosong yang
// dibuat bersama chapter) dihapus begitu lesson riil pertama masuk.
func Create(db *gorm.DB, chapterID uuid.UUID, in CreateInput) (*lessonModel.Lesson, error) {
	if err := ValidatePreview(in.IsPreview, ""); err != nil {
		return nil, err
	}
	var lesson lessonModel.Lesson
	err := db.Transaction(func(tx *gorm.DB) error {
		// Bersihkan placeholder sebelum menghitung posisi
		if err := tx.Where(`chapter_id = ? AND title = '' AND playback_id = ''`, chapterID).
			Delete(&lessonModel.Lesson{}).Error; err != nil {
			return err
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else {
			var count int64
			if err := tx.Model(&lessonModel.Lesson{}).
				Where("chapter_id = ?", chapterID).Count(&count).Error; err != nil {
				return err
			}
			order = int(count)
		}

		lesson = lessonModel.Lesson{
			ID:        in.ID,
			Title:     in.Title,
			Order:     order,
			IsPreview: in.IsPreview,
			ChapterID: chapterID,
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

type UpdateInput struct {
	Title      *string
	Order      *int
	PlaybackID *string
	Duration   *int
	IsPreview  *bool
}

// Update menerapkan patch parsial dengan validasi preview terhadap state
// hasil patch, bukan state lama.
func Update(db *gorm.DB, lessonID uuid.UUID, in UpdateInput) (*lessonModel.Lesson, error) {
	var lesson lessonModel.Lesson
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
			}
			return err
		}

		if in.Title != nil {
			lesson.Title = *in.Title
		}
		if in.Order != nil {
			lesson.Order = *in.Order
		}
		if in.PlaybackID != nil {
			lesson.PlaybackID = *in.PlaybackID
		}
		if in.Duration != nil {
			lesson.Duration = *in.Duration
		}
		if in.IsPreview != nil {
			lesson.IsPreview = *in.IsPreview
		}

		if err := ValidatePreview(lesson.IsPreview, lesson.PlaybackID); err != nil {
			return err
		}
		return tx.Save(&lesson).Error
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// AttachPlayback dipakai webhook stream: set playbackId + duration sekaligus.
func AttachPlayback(db *gorm.DB, lessonID uuid.UUID, playbackID string, duration int) (*lessonModel.Lesson, error) {
	pb, dur := playbackID, duration
	return Update(db, lessonID, UpdateInput{PlaybackID: &pb, Duration: &dur})
}

// FindByID dipakai webhook stream (retry loop) dan stream upload controller.
func FindByID(db *gorm.DB, lessonID uuid.UUID) (*lessonModel.Lesson, error) {
	var lesson lessonModel.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &lesson, nil
}
