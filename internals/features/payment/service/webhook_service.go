// internals/features/payment/service/webhook_service.go
//
// Reconciler notifikasi pembayaran Midtrans. Idempoten terhadap replay:
// enrollment di-upsert ON CONFLICT DO NOTHING, cart item yang sudah hilang
// bukan error.
package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"esta_backend/internals/constants"
	notifService "esta_backend/internals/features/engagement/notification/service"
	paymentModel "esta_backend/internals/features/payment/model"
)

type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
}

// isPaid: settlement, atau capture yang lolos fraud check.
func isPaid(n *MidtransNotification) bool {
	switch n.TransactionStatus {
	case "settlement":
		return true
	case "capture":
		return n.FraudStatus == "" || n.FraudStatus == "accept"
	}
	return false
}

// ReconcilePayment memproses satu notifikasi yang SUDAH lolos verifikasi
// signature. Transaction tak dikenal → 404 tanpa side effect apapun.
func ReconcilePayment(db *gorm.DB, notif *MidtransNotification, raw []byte) error {
	var trx paymentModel.Transaction
	if err := db.Where("midtrans_order_id = ?", notif.OrderID).First(&trx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return err
	}

	paid := isPaid(notif)
	var items []paymentModel.CartItem

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&paymentModel.Transaction{}).
			Where("id = ?", trx.ID).
			Updates(map[string]any{
				"status":      notif.TransactionStatus,
				"raw_payload": datatypes.JSON(raw),
			}).Error; err != nil {
			return err
		}
		if !paid {
			return nil
		}

		// Replay: items sudah kosong → loop no-op, tetap sukses
		if err := tx.Preload("Course").
			Where("cart_id = ?", trx.CartID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			enrollment := paymentModel.Enrollment{
				AuthID:   trx.UserID,
				UserRole: constants.UserRoleStudent,
				CourseID: item.CourseID,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&enrollment).Error; err != nil {
				return err
			}
		}
		return tx.Where("cart_id = ?", trx.CartID).
			Delete(&paymentModel.CartItem{}).Error
	})
	if err != nil {
		return err
	}

	// Notifikasi di luar transaksi — best-effort, gagal hanya di-log
	if paid {
		notifService.NotifyPaymentSuccess(db, trx.UserID, trx.MidtransOrderID, trx.TotalAmount)
		for _, item := range items {
			if item.Course == nil {
				continue
			}
			teacherAuthID, terr := teacherAuthIDByID(db, item.Course.TeacherID.String())
			if terr != nil {
				log.Printf("[ERROR] Gagal resolve teacher course %s: %v", item.CourseID, terr)
				continue
			}
			notifService.NotifyNewEnrollment(db, teacherAuthID, trx.UserID, item.CourseID, item.Course.Title)
		}
	}
	return nil
}

func teacherAuthIDByID(db *gorm.DB, teacherID string) (string, error) {
	var row struct{ AuthID string }
	err := db.Table("teachers").Select("auth_id").Where("id = ?", teacherID).Take(&row).Error
	return row.AuthID, err
}
