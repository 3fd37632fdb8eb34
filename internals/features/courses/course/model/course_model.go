// internals/features/courses/course/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "esta_backend/internals/features/users/model"
)

/* =========================================================
   ENUM LEVEL & STATUS (closed enum; validasi sebelum persist)
   ========================================================= */

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type CourseStatus string

const (
	StatusDraft         CourseStatus = "DRAFT"
	StatusIncomplete    CourseStatus = "INCOMPLETE"
	StatusPendingReview CourseStatus = "PENDING_REVIEW"
	StatusFollowedUp    CourseStatus = "FOLLOWED_UP"
	StatusApproved      CourseStatus = "APPROVED"
	StatusPublished     CourseStatus = "PUBLISHED"
	StatusRejected      CourseStatus = "REJECTED"
	StatusUnpublished   CourseStatus = "UNPUBLISHED"
	StatusArchived      CourseStatus = "ARCHIVED"
)

func (s CourseStatus) Valid() bool {
	_, ok := StatusDescriptions[s]
	return ok
}

// StatusDescriptions dipakai layer enrichment saat membentuk response.
var StatusDescriptions = map[CourseStatus]string{
	StatusDraft:         "Course just created. No content yet.",
	StatusIncomplete:    "Awaiting submission. Please complete and submit for review.",
	StatusPendingReview: "Submitted and waiting for admin review.",
	StatusFollowedUp:    "Admin sent feedback. Please respond.",
	StatusApproved:      "Approved by admin. Waiting to be published.",
	StatusPublished:     "Published and publicly visible.",
	StatusRejected:      "Rejected by admin. See feedback.",
	StatusUnpublished:   "Temporarily removed from public view.",
	StatusArchived:      "Deprecated course. No longer maintained.",
}

/* =========================================================
   MODELS
   ========================================================= */

// Course: cache lokal dari course-of-record. Slug unik global, immutable
// setelah dibuat (kecuali regenerasi privileged di course-service).
type Course struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(100);not null" json:"title"`
	Slug        string       `gorm:"type:varchar(160);not null;uniqueIndex" json:"slug"`
	Description string       `gorm:"type:text" json:"description"`
	Thumbnail   *string      `gorm:"type:text" json:"thumbnail"`
	Price       int64        `gorm:"not null;default:0" json:"price"`
	IsFree      bool         `gorm:"not null;default:false" json:"isFree"`
	Level       CourseLevel  `gorm:"type:varchar(20);not null;default:BEGINNER" json:"level"`
	Status      CourseStatus `gorm:"type:varchar(20);not null;default:DRAFT;index" json:"status"`
	License     string       `gorm:"type:varchar(40);not null;default:STANDARD" json:"license"`

	TeacherID uuid.UUID          `gorm:"type:uuid;not null;index" json:"teacherId"`
	Teacher   *userModel.Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`

	Categories []Category `gorm:"many2many:course_categories" json:"categories,omitempty"`
	Tags       []Tag      `gorm:"many2many:course_tags" json:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Course) TableName() string { return "courses" }

func (co *Course) BeforeCreate(tx *gorm.DB) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return nil
}

// Category berhirarki satu level (parent → children).
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string     `gorm:"type:varchar(80);not null" json:"name"`
	Slug     string     `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	Courses []Course `gorm:"many2many:course_categories" json:"courses,omitempty"`
}

func (Category) TableName() string { return "categories" }

func (ct *Category) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(40);not null" json:"name"`
	Slug string    `gorm:"type:varchar(60);not null;uniqueIndex" json:"slug"`
}

func (Tag) TableName() string { return "tags" }

func (tg *Tag) BeforeCreate(tx *gorm.DB) error {
	if tg.ID == uuid.Nil {
		tg.ID = uuid.New()
	}
	return nil
}
