// internals/features/payment/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	courseModel "esta_backend/internals/features/courses/course/model"
)

type Cart struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string    `gorm:"type:varchar(64);not null;index" json:"userId"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cart) TableName() string { return "carts" }

func (ca *Cart) BeforeCreate(tx *gorm.DB) error {
	if ca.ID == uuid.Nil {
		ca.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CartID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cart_items_cart_course" json:"cartId"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cart_items_cart_course" json:"courseId"`

	Course *courseModel.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (CartItem) TableName() string { return "cart_items" }

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// Transaction: status mirror dari gateway pembayaran lewat webhook
// (pending/settlement/expire/cancel/deny). RawPayload menyimpan notifikasi
// terakhir apa adanya untuk audit.
type Transaction struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string         `gorm:"type:varchar(64);not null;index" json:"userId"`
	MidtransOrderID string         `gorm:"type:varchar(80);not null;uniqueIndex" json:"midtransOrderId"`
	Status          string         `gorm:"type:varchar(30);not null;default:pending" json:"status"`
	TotalAmount     int64          `gorm:"not null" json:"totalAmount"`
	CartID          uuid.UUID      `gorm:"type:uuid;not null" json:"cartId"`
	RawPayload      datatypes.JSON `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Enrollment: hak akses course. Unik (authId, courseId) — kunci idempotensi
// replay webhook settlement.
type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID   string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_enrollments_auth_course" json:"authId"`
	UserRole string    `gorm:"type:varchar(10);not null;default:STUDENT" json:"userRole"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_auth_course" json:"courseId"`

	Course *courseModel.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Enrollment) TableName() string { return "enrollments" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
