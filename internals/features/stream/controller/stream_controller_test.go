package controller

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"esta_backend/internals/configs"
	chapterModel "esta_backend/internals/features/courses/chapter/model"
	courseModel "esta_backend/internals/features/courses/course/model"
	lessonModel "esta_backend/internals/features/courses/lesson/model"
	streamService "esta_backend/internals/features/stream/service"
	userModel "esta_backend/internals/features/users/model"
	helper "esta_backend/internals/helpers"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *lessonModel.Lesson) {
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
	chapter := chapterModel.Chapter{
		Title: "Chapter 1: Intro", Slug: "belajar-go-budi-chapter-1-ab3d",
		Order: 0, CourseID: course.ID,
	}
	require.NoError(t, db.Create(&chapter).Error)
	lesson := lessonModel.Lesson{Title: "Hello", Order: 0, ChapterID: chapter.ID}
	require.NoError(t, db.Create(&lesson).Error)

	// Platform video palsu untuk update display metadata
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	t.Cleanup(platform.Close)

	configs.StreamWebhookSecret = "whsec-test"

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	ctrl := NewStreamController(db, streamService.NewStreamClientWith(platform.URL, "acct", "token"))
	app.Post("/api/str/webhook", ctrl.HandleWebhook)
	return app, db, &lesson
}

func signedRequest(t *testing.T, body []byte) *http.Request {
	t.Helper()
	ts := "1700000000"
	mac := hmac.New(sha256.New, []byte("whsec-test"))
	mac.Write([]byte(ts + "."))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/str/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Webhook-Signature", fmt.Sprintf("t=%s,v1=%s", ts, sig))
	return req
}

func readyPayload(lessonID uuid.UUID) []byte {
	return []byte(fmt.Sprintf(
		`{"uid":"vid-1","duration":89.6,"status":{"state":"ready"},"meta":{"lessonId":"%s"}}`,
		lessonID,
	))
}

func TestWebhook_InvalidSignature(t *testing.T) {
	app, db, lesson := setupApp(t)

	body := readyPayload(lesson.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/str/webhook", bytes.NewReader(body))
	req.Header.Set("Webhook-Signature", "t=1700000000,v1=deadbeef")

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Tidak ada side effect
	var stored lessonModel.Lesson
	require.NoError(t, db.First(&stored, "id = ?", lesson.ID).Error)
	assert.Empty(t, stored.PlaybackID)
}

func TestWebhook_ReadyAttachesPlayback(t *testing.T) {
	app, db, lesson := setupApp(t)

	resp, err := app.Test(signedRequest(t, readyPayload(lesson.ID)), 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored lessonModel.Lesson
	require.NoError(t, db.First(&stored, "id = ?", lesson.ID).Error)
	assert.Equal(t, "vid-1", stored.PlaybackID)
	assert.Equal(t, 90, stored.Duration, "durasi dibulatkan ke detik terdekat")
}

func TestWebhook_UnknownLessonIsTerminal404(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(signedRequest(t, readyPayload(uuid.New())), 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWebhook_NonReadyStateAcked(t *testing.T) {
	app, db, lesson := setupApp(t)

	body := []byte(fmt.Sprintf(
		`{"uid":"vid-1","duration":10,"status":{"state":"inprogress"},"meta":{"lessonId":"%s"}}`,
		lesson.ID,
	))
	resp, err := app.Test(signedRequest(t, body), 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored lessonModel.Lesson
	require.NoError(t, db.First(&stored, "id = ?", lesson.ID).Error)
	assert.Empty(t, stored.PlaybackID, "state selain ready tidak menyentuh lesson")
}
