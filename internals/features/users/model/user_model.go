// internals/features/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Teacher adalah profil pengajar. AuthID = identitas dari identity provider
// ("paspor"); ID = identitas profil lokal yang dirujuk Course.TeacherID.
type Teacher struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID   string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"authId"`
	Name     string    `gorm:"type:varchar(120);not null" json:"name"`
	Username string    `gorm:"type:varchar(60);not null;uniqueIndex" json:"username"`
	Bio      *string   `gorm:"type:text" json:"bio,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Teacher) TableName() string { return "teachers" }

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Student struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID   string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"authId"`
	Name     string    `gorm:"type:varchar(120);not null" json:"name"`
	Username string    `gorm:"type:varchar(60);not null;uniqueIndex" json:"username"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string { return "students" }

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
