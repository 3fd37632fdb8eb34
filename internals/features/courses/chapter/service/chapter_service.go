// internals/features/courses/chapter/service/chapter_service.go
//
// Pemeliharaan bentuk chapter di cache lokal: judul "Chapter N: raw",
// slug {courseSlug}-chapter-{N}-{suffix}, order zero-based rapat per course.
// Semua mutasi multi-baris dibungkus satu db.Transaction.
package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	chapterModel "esta_backend/internals/features/courses/chapter/model"
	courseModel "esta_backend/internals/features/courses/course/model"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	helper "esta_backend/internals/helpers"
)

// FormatTitle: "Chapter {order+1}: {raw}". Order disimpan zero-based,
// nomor yang dilihat user one-based.
func FormatTitle(order int, rawTitle string) string {
	return fmt.Sprintf("Chapter %d: %s", order+1, rawTitle)
}

var chapterTitleRe = regexp.MustCompile(`^Chapter \d+: (.*)$`)

// RawTitle membalik FormatTitle (untuk regenerasi judul saat reorder).
func RawTitle(title string) string {
	if m := chapterTitleRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return title
}

type ReorderInput struct {
	ID    uuid.UUID
	Order int
}

// ValidateReorder menolak order duplikat SEBELUM menyentuh remote/DB.
func ValidateReorder(items []ReorderInput) error {
	seen := map[int]bool{}
	for _, it := range items {
		if seen[it.Order] {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Duplicate chapter order detected: %d", it.Order))
		}
		seen[it.Order] = true
	}
	return nil
}

// NextOrder: posisi chapter baru = jumlah chapter sekarang (append).
func NextOrder(db *gorm.DB, courseID uuid.UUID) (int, error) {
	var count int64
	err := db.Model(&chapterModel.Chapter{}).
		Where("course_id = ?", courseID).Count(&count).Error
	return int(count), err
}

// Create menempatkan chapter baru di posisi terakhir course. Judul dan slug
// dibentuk di sini; suffix acak menjaga slug tetap unik global. id dari
// course-service dipakai apa adanya supaya cache dan remote satu identitas
// (uuid.Nil → generate sendiri, dipakai test).
func Create(db *gorm.DB, course *courseModel.Course, rawTitle string, id uuid.UUID) (*chapterModel.Chapter, error) {
	var chapter chapterModel.Chapter
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := NextOrder(tx, course.ID)
		if err != nil {
			return err
		}
		chapter = chapterModel.Chapter{
			ID:       id,
			Title:    FormatTitle(order, rawTitle),
			Slug:     helper.GenerateChapterSlug(course.Slug, order+1, ""),
			Order:    order,
			CourseID: course.ID,
		}
		return tx.Create(&chapter).Error
	})
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// UpdateTitle hanya mengganti bagian raw judul. Nomor dan SUFFIX slug lama
// dipertahankan — bookmark user tidak boleh putus karena ganti judul.
func UpdateTitle(db *gorm.DB, chapterID uuid.UUID, rawTitle string) (*chapterModel.Chapter, error) {
	var chapter chapterModel.Chapter
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&chapter, "id = ?", chapterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
			}
			return err
		}
		chapter.Title = FormatTitle(chapter.Order, rawTitle)
		return tx.Model(&chapter).Update("title", chapter.Title).Error
	})
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ReorderPlan: bentuk final satu chapter hasil reorder — order, judul, dan
// slug (suffix acak baru) yang sudah dihitung.
type ReorderPlan struct {
	ID    uuid.UUID
	Order int
	Title string
	Slug  string
}

// PlanReorder memvalidasi batch [{id, order}] dan menghitung judul + slug
// final dari cache lokal TANPA menulis apa pun. Satu plan dipakai untuk
// remote dan lokal sekaligus supaya dua sisi memegang slug yang identik.
// Duplikat ditolak ValidateReorder; id di luar course → 404.
func PlanReorder(db *gorm.DB, course *courseModel.Course, items []ReorderInput) ([]ReorderPlan, error) {
	if err := ValidateReorder(items); err != nil {
		return nil, err
	}
	plan := make([]ReorderPlan, 0, len(items))
	for _, it := range items {
		var chapter chapterModel.Chapter
		if err := db.Where("id = ? AND course_id = ?", it.ID, course.ID).
			First(&chapter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Chapter not found")
			}
			return nil, err
		}
		plan = append(plan, ReorderPlan{
			ID:    it.ID,
			Order: it.Order,
			Title: FormatTitle(it.Order, RawTitle(chapter.Title)),
			Slug:  helper.GenerateChapterSlug(course.Slug, it.Order+1, ""),
		})
	}
	return plan, nil
}

// ApplyReorder mempersist plan apa adanya dalam SATU transaksi.
func ApplyReorder(db *gorm.DB, plan []ReorderPlan) ([]chapterModel.Chapter, error) {
	var result []chapterModel.Chapter
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, p := range plan {
			res := tx.Model(&chapterModel.Chapter{}).
				Where("id = ?", p.ID).
				Updates(map[string]any{
					"order": p.Order,
					"title": p.Title,
					"slug":  p.Slug,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
			}
			var chapter chapterModel.Chapter
			if err := tx.First(&chapter, "id = ?", p.ID).Error; err != nil {
				return err
			}
			result = append(result, chapter)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reorder = PlanReorder + ApplyReorder (jalur tanpa remote, dipakai test).
func Reorder(db *gorm.DB, course *courseModel.Course, items []ReorderInput) ([]chapterModel.Chapter, error) {
	plan, err := PlanReorder(db, course, items)
	if err != nil {
		return nil, err
	}
	return ApplyReorder(db, plan)
}

// Delete menghapus chapter + seluruh lesson anaknya, lalu merapatkan order
// sisa chapter dari 0 (judul + slug ikut diregenerasi). Atomik.
func Delete(db *gorm.DB, course *courseModel.Course, chapterID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var chapter chapterModel.Chapter
		if err := tx.Where("id = ? AND course_id = ?", chapterID, course.ID).
			First(&chapter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
			}
			return err
		}

		// 1) Lessons anak ikut terhapus
		if err := tx.Where("chapter_id = ?", chapter.ID).
			Delete(&lessonModel.Lesson{}).Error; err != nil {
			return err
		}
		// 2) Chapter-nya sendiri
		if err := tx.Delete(&chapter).Error; err != nil {
			return err
		}

		// 3) Renumber sisa chapter contiguous dari 0
		var remaining []chapterModel.Chapter
		if err := tx.Where("course_id = ?", course.ID).
			Order(`"order" ASC`).Find(&remaining).Error; err != nil {
			return err
		}
		for i, ch := range remaining {
			if ch.Order == i {
				continue
			}
			raw := RawTitle(ch.Title)
			suffix := helper.SuffixFromSlug(ch.Slug)
			if err := tx.Model(&chapterModel.Chapter{}).
				Where("id = ?", ch.ID).
				Updates(map[string]any{
					"order": i,
					"title": FormatTitle(i, raw),
					"slug":  helper.GenerateChapterSlug(course.Slug, i+1, suffix),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
