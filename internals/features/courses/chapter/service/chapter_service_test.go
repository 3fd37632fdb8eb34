package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	chapterModel "esta_backend/internals/features/courses/chapter/model"
	courseModel "esta_backend/internals/features/courses/course/model"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	userModel "esta_backend/internals/features/users/model"
	helper "esta_backend/internals/helpers"
)

func setupDB(t *testing.T) (*gorm.DB, *courseModel.Course) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.Teacher{}, &courseModel.Course{},
		&chapterModel.Chapter{}, &lessonModel.Lesson{},
	))

	teacher := userModel.Teacher{AuthID: "auth-1", Name: "Budi", Username: "budi"}
	require.NoError(t, db.Create(&teacher).Error)

	course := courseModel.Course{
		Title: "Belajar Go", Slug: "belajar-go-budi",
		Level: courseModel.LevelBeginner, Status: courseModel.StatusDraft,
		License: "STANDARD", TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&course).Error)
	return db, &course
}

func TestFormatTitleRoundTrip(t *testing.T) {
	assert.Equal(t, "Chapter 1: Intro", FormatTitle(0, "Intro"))
	assert.Equal(t, "Chapter 3: Deep: Dive", FormatTitle(2, "Deep: Dive"))
	assert.Equal(t, "Intro", RawTitle("Chapter 1: Intro"))
	assert.Equal(t, "Deep: Dive", RawTitle("Chapter 3: Deep: Dive"))
	assert.Equal(t, "plain title", RawTitle("plain title"))
}

func TestCreate_AppendsInOrder(t *testing.T) {
	db, course := setupDB(t)

	first, err := Create(db, course, "Intro", uuid.Nil)
	require.NoError(t, err)
	second, err := Create(db, course, "Basics", uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, "Chapter 1: Intro", first.Title)
	assert.Contains(t, first.Slug, "belajar-go-budi-chapter-1-")

	assert.Equal(t, 1, second.Order)
	assert.Equal(t, "Chapter 2: Basics", second.Title)
	assert.Contains(t, second.Slug, "belajar-go-budi-chapter-2-")
}

func TestUpdateTitle_PreservesSlugSuffix(t *testing.T) {
	db, course := setupDB(t)

	ch, err := Create(db, course, "Intro", uuid.Nil)
	require.NoError(t, err)
	suffix := helper.SuffixFromSlug(ch.Slug)

	updated, err := UpdateTitle(db, ch.ID, "Introduction")
	require.NoError(t, err)
	assert.Equal(t, "Chapter 1: Introduction", updated.Title)

	var stored chapterModel.Chapter
	require.NoError(t, db.First(&stored, "id = ?", ch.ID).Error)
	assert.Equal(t, ch.Slug, stored.Slug, "slug tidak boleh berubah saat update judul")
	assert.Equal(t, suffix, helper.SuffixFromSlug(stored.Slug))
}

func TestValidateReorder_Duplicate(t *testing.T) {
	err := ValidateReorder([]ReorderInput{
		{ID: uuid.New(), Order: 0},
		{ID: uuid.New(), Order: 1},
		{ID: uuid.New(), Order: 1},
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, "Duplicate chapter order detected: 1", fe.Message)
}

func TestReorder_RegeneratesTitleAndSlug(t *testing.T) {
	db, course := setupDB(t)

	a, err := Create(db, course, "Intro", uuid.Nil)
	require.NoError(t, err)
	b, err := Create(db, course, "Basics", uuid.Nil)
	require.NoError(t, err)

	_, err = Reorder(db, course, []ReorderInput{
		{ID: a.ID, Order: 1},
		{ID: b.ID, Order: 0},
	})
	require.NoError(t, err)

	var storedA, storedB chapterModel.Chapter
	require.NoError(t, db.First(&storedA, "id = ?", a.ID).Error)
	require.NoError(t, db.First(&storedB, "id = ?", b.ID).Error)

	assert.Equal(t, 1, storedA.Order)
	assert.Equal(t, "Chapter 2: Intro", storedA.Title)
	assert.Contains(t, storedA.Slug, "belajar-go-budi-chapter-2-")
	assert.NotEqual(t, a.Slug, storedA.Slug, "reorder harus regenerasi suffix")

	assert.Equal(t, 0, storedB.Order)
	assert.Equal(t, "Chapter 1: Basics", storedB.Title)
}

func TestPlanReorder_PlanPersistedVerbatim(t *testing.T) {
	db, course := setupDB(t)

	a, err := Create(db, course, "Intro", uuid.Nil)
	require.NoError(t, err)
	b, err := Create(db, course, "Basics", uuid.Nil)
	require.NoError(t, err)

	plan, err := PlanReorder(db, course, []ReorderInput{
		{ID: a.ID, Order: 1},
		{ID: b.ID, Order: 0},
	})
	require.NoError(t, err)
	require.Len(t, plan, 2)

	// Plan tidak menulis apa pun
	var beforeA chapterModel.Chapter
	require.NoError(t, db.First(&beforeA, "id = ?", a.ID).Error)
	assert.Equal(t, a.Slug, beforeA.Slug)

	_, err = ApplyReorder(db, plan)
	require.NoError(t, err)

	// Slug/judul yang tersimpan = persis isi plan — plan yang sama dikirim
	// ke remote, jadi dua sisi dijamin identik
	for _, p := range plan {
		var stored chapterModel.Chapter
		require.NoError(t, db.First(&stored, "id = ?", p.ID).Error)
		assert.Equal(t, p.Slug, stored.Slug)
		assert.Equal(t, p.Title, stored.Title)
		assert.Equal(t, p.Order, stored.Order)
	}
}

func TestReorder_UnknownChapterRollsBack(t *testing.T) {
	db, course := setupDB(t)

	a, err := Create(db, course, "Intro", uuid.Nil)
	require.NoError(t, err)
	b, err := Create(db, course, "Basics", uuid.Nil)
	require.NoError(t, err)

	_, err = Reorder(db, course, []ReorderInput{
		{ID: b.ID, Order: 0},
		{ID: uuid.New(), Order: 1}, // bukan milik course ini
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	// Seluruh batch batal — state awal utuh
	var storedA, storedB chapterModel.Chapter
	require.NoError(t, db.First(&storedA, "id = ?", a.ID).Error)
	require.NoError(t, db.First(&storedB, "id = ?", b.ID).Error)
	assert.Equal(t, 0, storedA.Order)
	assert.Equal(t, 1, storedB.Order)
	assert.Equal(t, b.Slug, storedB.Slug)
}

func TestDelete_CascadesAndRenumbers(t *testing.T) {
	db, course := setupDB(t)

	a, err := Create(db, course, "Intro", uuid.Nil)
	require.NoError(t, err)
	b, err := Create(db, course, "Basics", uuid.Nil)
	require.NoError(t, err)
	c, err := Create(db, course, "Advanced", uuid.Nil)
	require.NoError(t, err)

	lesson := lessonModel.Lesson{Title: "L1", Order: 0, ChapterID: b.ID}
	require.NoError(t, db.Create(&lesson).Error)

	require.NoError(t, Delete(db, course, b.ID))

	// Lessons anak ikut hilang
	var lessonCount int64
	require.NoError(t, db.Model(&lessonModel.Lesson{}).
		Where("chapter_id = ?", b.ID).Count(&lessonCount).Error)
	assert.Zero(t, lessonCount)

	// Sisa chapter rapat dari 0 dengan judul+slug baru
	var storedA, storedC chapterModel.Chapter
	require.NoError(t, db.First(&storedA, "id = ?", a.ID).Error)
	require.NoError(t, db.First(&storedC, "id = ?", c.ID).Error)

	assert.Equal(t, 0, storedA.Order)
	assert.Equal(t, "Chapter 1: Intro", storedA.Title)

	assert.Equal(t, 1, storedC.Order)
	assert.Equal(t, "Chapter 2: Advanced", storedC.Title)
	assert.Contains(t, storedC.Slug, "belajar-go-budi-chapter-2-")
	// Renumber mempertahankan suffix lama
	assert.Equal(t, helper.SuffixFromSlug(c.Slug), helper.SuffixFromSlug(storedC.Slug))
}

func TestDelete_UnknownChapter(t *testing.T) {
	db, course := setupDB(t)
	err := Delete(db, course, uuid.New())
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
