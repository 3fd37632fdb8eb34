// internals/features/payment/service/midtrans_service.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"esta_backend/internals/configs"
)

var snapClient snap.Client

// InitMidtrans dipanggil sekali dari main setelah LoadEnv.
func InitMidtrans() {
	env := midtrans.Sandbox
	if configs.GetEnv("MIDTRANS_ENV", "sandbox") == "production" {
		env = midtrans.Production
	}
	snapClient.New(configs.MidtransServerKey, env)
	log.Println("✅ Midtrans snap client siap.")
}

// GenerateOrderID: format `esta-co-<unix>-<rand>`; unik per checkout dan
// gampang dikenali di dashboard Midtrans.
func GenerateOrderID() string {
	return fmt.Sprintf("esta-co-%d-%04d", time.Now().Unix(), rand.Intn(10000))
}

// CreateSnapTransaction mint Snap token + redirect URL untuk satu order.
func CreateSnapTransaction(orderID string, grossAmount int64, customerName string) (*snap.Response, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
		},
	}
	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// IsSignatureValid memverifikasi signature notifikasi Midtrans:
// sha512(order_id + status_code + gross_amount + serverKey).
func IsSignatureValid(orderID, statusCode, grossAmount, signatureKey string) bool {
	payload := orderID + statusCode + grossAmount + configs.MidtransServerKey
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:]) == signatureKey
}
