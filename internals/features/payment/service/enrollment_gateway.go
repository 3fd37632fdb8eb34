// internals/features/payment/service/enrollment_gateway.go
//
// Cek enrollment ke payment-service. FAIL-CLOSED: error jaringan, status
// aneh, body rusak — semuanya dianggap belum terdaftar. Salah menolak lebih
// murah daripada salah memberi akses konten berbayar.
package service

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"esta_backend/internals/configs"
)

type EnrollmentGateway struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewEnrollmentGateway() *EnrollmentGateway {
	return NewEnrollmentGatewayWith(configs.PaymentServiceURL, configs.InternalAPISecret)
}

func NewEnrollmentGatewayWith(baseURL, secret string) *EnrollmentGateway {
	return &EnrollmentGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// IsEnrolled implement access.EnrollmentChecker. Kontrak payment-service
// memakai key `userId` (bukan `authId`) — salah key berarti remote tidak
// pernah menemukan user dan fail-closed menolak semua orang.
func (g *EnrollmentGateway) IsEnrolled(authID string, courseID uuid.UUID) bool {
	endpoint := g.baseURL + "/internal/enrollments/check" +
		"?userId=" + url.QueryEscape(authID) +
		"&courseId=" + courseID.String()

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Internal-Secret", g.secret)

	resp, err := g.http.Do(req)
	if err != nil {
		log.Printf("[ERROR] Cek enrollment gagal (authId=%s): %v", authID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var body struct {
		IsEnrolled bool `json:"isEnrolled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return body.IsEnrolled
}
