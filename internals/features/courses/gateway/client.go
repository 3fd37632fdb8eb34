// internals/features/courses/gateway/client.go
//
// Klien internal ke course-service (source of truth konten course).
// Semua mutasi konten dari BFF lewat klien ini; DB lokal hanya cache baca.
// Course-service mempercayai header identitas dari sini, jadi klien ini
// hanya boleh dipanggil SETELAH access check lolos.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"esta_backend/internals/configs"
	helper "esta_backend/internals/helpers"
)

type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient membaca base URL + secret dari configs (dipanggil setelah LoadEnv).
func NewClient() *Client {
	return NewClientWith(configs.CourseServiceURL, configs.InternalAPISecret)
}

// NewClientWith dipakai test dengan httptest.Server.
func NewClientWith(baseURL, secret string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

/* =========================================================
   WIRE TYPES (representasi remote, camelCase)
   ========================================================= */

type CourseDTO struct {
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
	Categories  []string  `json:"categories,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ChapterDTO struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Order    int       `json:"order"`
	CourseID uuid.UUID `json:"courseId"`
}

type LessonDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Order      int       `json:"order"`
	PlaybackID string    `json:"playbackId"`
	Duration   int       `json:"duration"`
	IsPreview  bool      `json:"isPreview"`
	ChapterID  uuid.UUID `json:"chapterId"`
}

type CourseListResult struct {
	Data       []CourseDTO       `json:"data"`
	Pagination helper.Pagination `json:"pagination"`
}

type CreateCourseInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	IsFree      bool     `json:"isFree"`
	Level       string   `json:"level"`
	TeacherID   string   `json:"teacherId"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
}

type UpdateCourseInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Price       *int64   `json:"price,omitempty"`
	IsFree      *bool    `json:"isFree,omitempty"`
	Level       *string  `json:"level,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
}

type ChapterInput struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Order *int   `json:"order,omitempty"`
}

type LessonInput struct {
	Title      *string `json:"title,omitempty"`
	Order      *int    `json:"order,omitempty"`
	PlaybackID *string `json:"playbackId,omitempty"`
	Duration   *int    `json:"duration,omitempty"`
	IsPreview  *bool   `json:"isPreview,omitempty"`
}

// ReorderItem membawa judul + slug final yang sudah dihitung BFF supaya
// remote dan cache lokal memegang slug yang identik.
type ReorderItem struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type ListQuery struct {
	Status   []string
	Level    []string
	Category string
	Tag      string
	Search   string
	Page     int
	Limit    int
}

/* =========================================================
   COURSE OPS
   ========================================================= */

func (cl *Client) CreateCourse(ctx context.Context, actorID string, in CreateCourseInput) (*CourseDTO, error) {
	var out CourseDTO
	if err := cl.do(ctx, http.MethodPost, "/courses", actorID, in, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) UpdateCourse(ctx context.Context, actorID string, courseID uuid.UUID, in UpdateCourseInput) (*CourseDTO, error) {
	var out CourseDTO
	path := "/courses/" + courseID.String()
	if err := cl.do(ctx, http.MethodPatch, path, actorID, in, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) UpdateCourseStatus(ctx context.Context, actorID string, courseID uuid.UUID, status string) (*CourseDTO, error) {
	var out CourseDTO
	path := "/courses/" + courseID.String() + "/status"
	body := map[string]string{"status": status}
	if err := cl.do(ctx, http.MethodPatch, path, actorID, body, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) UpdateCourseTags(ctx context.Context, actorID string, courseID uuid.UUID, tags []string) (*CourseDTO, error) {
	var out CourseDTO
	path := "/courses/" + courseID.String() + "/tags"
	body := map[string][]string{"tags": tags}
	if err := cl.do(ctx, http.MethodPut, path, actorID, body, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) GetCourseByID(ctx context.Context, courseID uuid.UUID) (*CourseDTO, error) {
	var out CourseDTO
	path := "/courses/" + courseID.String()
	if err := cl.do(ctx, http.MethodGet, path, "", nil, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) GetCourseBySlug(ctx context.Context, slug string) (*CourseDTO, error) {
	var out CourseDTO
	path := "/courses/slug/" + url.PathEscape(slug)
	if err := cl.do(ctx, http.MethodGet, path, "", nil, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCourses meneruskan filter sebagai query param berulang dan
// mengembalikan envelope {data, pagination} remote apa adanya.
func (cl *Client) ListCourses(ctx context.Context, q ListQuery) (*CourseListResult, error) {
	vals := url.Values{}
	for _, s := range q.Status {
		vals.Add("status", s)
	}
	for _, l := range q.Level {
		vals.Add("level", l)
	}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Tag != "" {
		vals.Set("tag", q.Tag)
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Page > 0 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/courses"
	if enc := vals.Encode(); enc != "" {
		path += "?" + enc
	}
	var out CourseListResult
	if err := cl.do(ctx, http.MethodGet, path, "", nil, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) ListCoursesByTeacher(ctx context.Context, actorID string, teacherID uuid.UUID, page, limit int) (*CourseListResult, error) {
	vals := url.Values{}
	if page > 0 {
		vals.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		vals.Set("limit", strconv.Itoa(limit))
	}
	path := "/teachers/" + teacherID.String() + "/courses"
	if enc := vals.Encode(); enc != "" {
		path += "?" + enc
	}
	var out CourseListResult
	if err := cl.do(ctx, http.MethodGet, path, actorID, nil, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   CHAPTER & LESSON OPS
   ========================================================= */

func (cl *Client) CreateChapter(ctx context.Context, actorID string, courseID uuid.UUID, in ChapterInput) (*ChapterDTO, error) {
	var out ChapterDTO
	path := "/courses/" + courseID.String() + "/chapters"
	if err := cl.do(ctx, http.MethodPost, path, actorID, in, &out, "course"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) UpdateChapter(ctx context.Context, actorID string, chapterID uuid.UUID, in ChapterInput) (*ChapterDTO, error) {
	var out ChapterDTO
	path := "/chapters/" + chapterID.String()
	if err := cl.do(ctx, http.MethodPatch, path, actorID, in, &out, "chapter"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) ReorderChapters(ctx context.Context, actorID string, courseID uuid.UUID, items []ReorderItem) ([]ChapterDTO, error) {
	var out []ChapterDTO
	path := "/courses/" + courseID.String() + "/chapters/reorder"
	body := map[string][]ReorderItem{"chapters": items}
	if err := cl.do(ctx, http.MethodPut, path, actorID, body, &out, "chapter"); err != nil {
		return nil, err
	}
	return out, nil
}

func (cl *Client) DeleteChapter(ctx context.Context, actorID string, chapterID uuid.UUID) error {
	path := "/chapters/" + chapterID.String()
	return cl.do(ctx, http.MethodDelete, path, actorID, nil, nil, "chapter")
}

func (cl *Client) CreateLesson(ctx context.Context, actorID string, chapterID uuid.UUID, in LessonInput) (*LessonDTO, error) {
	var out LessonDTO
	path := "/chapters/" + chapterID.String() + "/lessons"
	if err := cl.do(ctx, http.MethodPost, path, actorID, in, &out, "chapter"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) UpdateLesson(ctx context.Context, actorID string, lessonID uuid.UUID, in LessonInput) (*LessonDTO, error) {
	var out LessonDTO
	path := "/lessons/" + lessonID.String()
	if err := cl.do(ctx, http.MethodPatch, path, actorID, in, &out, "lesson"); err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   TRANSPORT + TRANSLASI ERROR
   ========================================================= */

func (cl *Client) do(ctx context.Context, method, path, actorID string, body, out any, resource string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to encode request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, cl.baseURL+path, reader)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Secret", cl.secret)
	if actorID != "" {
		req.Header.Set("X-Authenticated-User-ID", actorID)
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Course service unavailable")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		// Envelope {data: ...} atau body polos, dua-duanya diterima.
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
			// List endpoint butuh envelope utuh (data + pagination).
			if _, isList := out.(*CourseListResult); !isList {
				raw = envelope.Data
			}
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Invalid response from course service")
		}
		return nil
	}

	return translate(resp.StatusCode, raw, resource)
}

// translate memetakan status remote → *fiber.Error yang aman dikirim
// balik ke frontend. 403/404 pakai pesan kanonik, bukan pesan remote.
func translate(status int, raw []byte, resource string) error {
	remoteMsg := ""
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		remoteMsg = parsed.Message
	}

	switch status {
	case http.StatusForbidden:
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("Forbidden: you do not own this %s", resource))
	case http.StatusNotFound:
		return fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("%s not found", capitalize(resource)))
	case http.StatusBadRequest:
		if remoteMsg == "" {
			remoteMsg = "Invalid request"
		}
		return fiber.NewError(fiber.StatusBadRequest, remoteMsg)
	default:
		if remoteMsg != "" {
			return fiber.NewError(fiber.StatusBadGateway, remoteMsg)
		}
		return fiber.NewError(fiber.StatusBadGateway, "Course service unavailable")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
