package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentModel "esta_backend/internals/features/payment/model"
)

func TestEnrollmentGateway_FailClosed(t *testing.T) {
	// Tidak ada yang listen → harus false, bukan error/panic
	gw := NewEnrollmentGatewayWith("http://127.0.0.1:1", "s3cret")
	assert.False(t, gw.IsEnrolled("auth-1", uuid.New()))

	// Status aneh → false
	srv500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv500.Close()
	gw = NewEnrollmentGatewayWith(srv500.URL, "s3cret")
	assert.False(t, gw.IsEnrolled("auth-1", uuid.New()))

	// Body rusak → false
	srvBad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	}))
	defer srvBad.Close()
	gw = NewEnrollmentGatewayWith(srvBad.URL, "s3cret")
	assert.False(t, gw.IsEnrolled("auth-1", uuid.New()))
}

func TestEnrollmentGateway_SendsSecretAndParams(t *testing.T) {
	courseID := uuid.New()
	var gotSecret, gotUserID, gotCourseID string
	var hasAuthIDKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Internal-Secret")
		gotUserID = r.URL.Query().Get("userId")
		gotCourseID = r.URL.Query().Get("courseId")
		_, hasAuthIDKey = r.URL.Query()["authId"]
		json.NewEncoder(w).Encode(map[string]bool{"isEnrolled": true})
	}))
	defer srv.Close()

	gw := NewEnrollmentGatewayWith(srv.URL, "s3cret")
	assert.True(t, gw.IsEnrolled("auth-1", courseID))
	assert.Equal(t, "s3cret", gotSecret)
	assert.Equal(t, "auth-1", gotUserID, "kontrak remote memakai key userId")
	assert.Equal(t, courseID.String(), gotCourseID)
	assert.False(t, hasAuthIDKey)
}

func TestEnrollmentChecker_LocalFirst(t *testing.T) {
	db := setupDB(t)
	f := seedCheckout(t, db)

	require.NoError(t, db.Create(&paymentModel.Enrollment{
		AuthID: "auth-buyer", UserRole: "STUDENT", CourseID: f.course.ID,
	}).Error)

	// Remote sengaja mati — hit lokal sudah cukup
	checker := &EnrollmentChecker{DB: db, Remote: NewEnrollmentGatewayWith("http://127.0.0.1:1", "s3cret")}
	assert.True(t, checker.IsEnrolled("auth-buyer", f.course.ID))
	assert.False(t, checker.IsEnrolled("auth-other", f.course.ID), "miss lokal + remote mati → fail-closed")
}
