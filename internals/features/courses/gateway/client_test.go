package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsInternalHeaders(t *testing.T) {
	var gotSecret, gotActor, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Internal-Secret")
		gotActor = r.Header.Get("X-Authenticated-User-ID")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(CourseDTO{ID: uuid.New(), Title: "X"})
	}))
	defer srv.Close()

	cl := NewClientWith(srv.URL, "s3cret")
	_, err := cl.CreateCourse(context.Background(), "auth-1", CreateCourseInput{Title: "X"})
	require.NoError(t, err)

	assert.Equal(t, "s3cret", gotSecret)
	assert.Equal(t, "auth-1", gotActor)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDo_NoActorHeaderOnPublicReads(t *testing.T) {
	var hasActor bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasActor = r.Header["X-Authenticated-User-Id"]
		json.NewEncoder(w).Encode(CourseDTO{ID: uuid.New()})
	}))
	defer srv.Close()

	cl := NewClientWith(srv.URL, "s3cret")
	_, err := cl.GetCourseBySlug(context.Background(), "belajar-go")
	require.NoError(t, err)
	assert.False(t, hasActor)
}

func TestDo_UnwrapsDataEnvelope(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": CourseDTO{ID: id, Title: "Wrapped"},
		})
	}))
	defer srv.Close()

	cl := NewClientWith(srv.URL, "s3cret")
	course, err := cl.GetCourseByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, course.ID)
	assert.Equal(t, "Wrapped", course.Title)
}

func TestTranslate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name        string
		remoteCode  int
		remoteBody  string
		wantCode    int
		wantMessage string
	}{
		{"forbidden", 403, `{"message":"remote says no"}`, fiber.StatusForbidden, "Forbidden: you do not own this course"},
		{"not found", 404, `{}`, fiber.StatusNotFound, "Course not found"},
		{"bad request passes remote detail", 400, `{"message":"title is too short"}`, fiber.StatusBadRequest, "title is too short"},
		{"server error", 500, `{}`, fiber.StatusBadGateway, "Course service unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.remoteCode)
				w.Write([]byte(tc.remoteBody))
			}))
			defer srv.Close()

			cl := NewClientWith(srv.URL, "s3cret")
			_, err := cl.GetCourseByID(context.Background(), uuid.New())
			require.Error(t, err)

			fe, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, fe.Code)
			assert.Equal(t, tc.wantMessage, fe.Message)
		})
	}
}

func TestTranslate_ResourceNameFollowsRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cl := NewClientWith(srv.URL, "s3cret")

	err := cl.DeleteChapter(context.Background(), "auth-1", uuid.New())
	require.Error(t, err)
	assert.Equal(t, "Forbidden: you do not own this chapter", err.(*fiber.Error).Message)

	_, err = cl.UpdateLesson(context.Background(), "auth-1", uuid.New(), LessonInput{})
	require.Error(t, err)
	assert.Equal(t, "Forbidden: you do not own this lesson", err.(*fiber.Error).Message)
}

func TestDo_NetworkErrorIsBadGateway(t *testing.T) {
	cl := NewClientWith("http://127.0.0.1:1", "s3cret") // tidak ada yang listen
	_, err := cl.GetCourseByID(context.Background(), uuid.New())
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadGateway, fe.Code)
}

func TestListCourses_QueryAndPaginationPassthrough(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"data": []CourseDTO{{Title: "A"}, {Title: "B"}},
			"pagination": map[string]any{
				"total": 42, "page": 2, "limit": 2, "totalPages": 21,
			},
		})
	}))
	defer srv.Close()

	cl := NewClientWith(srv.URL, "s3cret")
	result, err := cl.ListCourses(context.Background(), ListQuery{
		Status:   []string{"PUBLISHED"},
		Level:    []string{"BEGINNER", "ADVANCED"},
		Category: "programming",
		Page:     2,
		Limit:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"PUBLISHED"}, gotQuery["status"])
	assert.Equal(t, []string{"BEGINNER", "ADVANCED"}, gotQuery["level"])
	assert.Equal(t, []string{"programming"}, gotQuery["category"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])

	require.Len(t, result.Data, 2)
	assert.EqualValues(t, 42, result.Pagination.Total)
	assert.Equal(t, 21, result.Pagination.TotalPages)
}
