package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esta_backend/internals/constants"
	courseModel "esta_backend/internals/features/courses/course/model"
)

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T", err)
	return fe.Code
}

func TestValidateTransition_HappyPath(t *testing.T) {
	cases := []struct {
		from, to courseModel.CourseStatus
		role     string
	}{
		{courseModel.StatusDraft, courseModel.StatusIncomplete, constants.RoleTeacher},
		{courseModel.StatusIncomplete, courseModel.StatusPendingReview, constants.RoleTeacher},
		{courseModel.StatusFollowedUp, courseModel.StatusPendingReview, constants.RoleTeacher},
		{courseModel.StatusRejected, courseModel.StatusPendingReview, constants.RoleTeacher},
		{courseModel.StatusPendingReview, courseModel.StatusApproved, constants.RoleAdmin},
		{courseModel.StatusPendingReview, courseModel.StatusRejected, constants.RoleAdmin},
		{courseModel.StatusPendingReview, courseModel.StatusFollowedUp, constants.RoleAdmin},
		{courseModel.StatusApproved, courseModel.StatusPublished, constants.RoleAdmin},
		{courseModel.StatusPublished, courseModel.StatusUnpublished, constants.RoleAdmin},
		{courseModel.StatusPublished, courseModel.StatusArchived, constants.RoleAdmin},
		{courseModel.StatusUnpublished, courseModel.StatusPublished, constants.RoleAdmin},
	}
	for _, tc := range cases {
		assert.NoError(t, ValidateTransition(tc.from, tc.to, tc.role),
			"%s -> %s (%s)", tc.from, tc.to, tc.role)
	}
}

func TestValidateTransition_Invalid(t *testing.T) {
	// Lompat langsung draft → published
	err := ValidateTransition(courseModel.StatusDraft, courseModel.StatusPublished, constants.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	// ARCHIVED terminal
	err = ValidateTransition(courseModel.StatusArchived, courseModel.StatusPublished, constants.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	// Status di luar enum
	err = ValidateTransition(courseModel.StatusDraft, courseModel.CourseStatus("BOGUS"), constants.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestValidateTransition_AdminOnly(t *testing.T) {
	// Hasil review bukan wewenang teacher
	err := ValidateTransition(courseModel.StatusPendingReview, courseModel.StatusApproved, constants.RoleTeacher)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	err = ValidateTransition(courseModel.StatusPublished, courseModel.StatusUnpublished, constants.RoleTeacher)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestCanEditContent(t *testing.T) {
	editable := []courseModel.CourseStatus{
		courseModel.StatusDraft, courseModel.StatusIncomplete,
		courseModel.StatusFollowedUp, courseModel.StatusRejected,
	}
	frozen := []courseModel.CourseStatus{
		courseModel.StatusPendingReview, courseModel.StatusApproved,
		courseModel.StatusPublished, courseModel.StatusUnpublished,
		courseModel.StatusArchived,
	}

	for _, s := range editable {
		assert.True(t, CanEditContent(s, constants.RoleTeacher), "teacher harus bisa edit di %s", s)
	}
	for _, s := range frozen {
		assert.False(t, CanEditContent(s, constants.RoleTeacher), "teacher tidak boleh edit di %s", s)
		assert.True(t, CanEditContent(s, constants.RoleAdmin), "admin bypass di %s", s)
	}
}

func TestStatusDescription(t *testing.T) {
	assert.NotEmpty(t, StatusDescription(courseModel.StatusPublished))
	assert.Empty(t, StatusDescription(courseModel.CourseStatus("BOGUS")))
}
