// internals/features/stream/service/stream_service.go
//
// Klien platform video (Cloudflare Stream): mint direct-upload URL dan
// update display metadata. Verifikasi signature webhook juga di sini.
package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"esta_backend/internals/configs"
)

type StreamClient struct {
	baseURL   string
	accountID string
	token     string
	http      *http.Client
}

func NewStreamClient() *StreamClient {
	return NewStreamClientWith("https://api.cloudflare.com/client/v4",
		configs.StreamAccountID, configs.StreamAPIToken)
}

func NewStreamClientWith(baseURL, accountID, token string) *StreamClient {
	return &StreamClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		token:     token,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type DirectUpload struct {
	UploadURL string `json:"uploadURL"`
	UID       string `json:"uid"`
}

// CreateDirectUpload mint URL upload sekali-pakai; meta.lessonId jadi kunci
// rekonsiliasi saat webhook video-ready masuk.
func (sc *StreamClient) CreateDirectUpload(ctx context.Context, lessonID string) (*DirectUpload, error) {
	payload := map[string]any{
		"maxDurationSeconds": 21600,
		"meta":               map[string]string{"lessonId": lessonID},
	}
	buf, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/accounts/%s/stream/direct_upload", sc.baseURL, sc.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+sc.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stream direct_upload returned %d", resp.StatusCode)
	}

	var body struct {
		Success bool         `json:"success"`
		Result  DirectUpload `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if !body.Success || body.Result.UploadURL == "" {
		return nil, fmt.Errorf("stream direct_upload failed")
	}
	return &body.Result, nil
}

// UpdateDisplayMetadata set nama tampilan video di dashboard platform.
// Pemanggil memakai pola best-effort.
func (sc *StreamClient) UpdateDisplayMetadata(ctx context.Context, uid, name string) error {
	payload := map[string]any{"meta": map[string]string{"name": name}}
	buf, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/accounts/%s/stream/%s", sc.baseURL, sc.accountID, uid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sc.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream metadata update returned %d", resp.StatusCode)
	}
	return nil
}

// VerifyWebhookSignature: header `webhook-signature: t=<ts>,v1=<sig>`,
// sig = HMAC-SHA256(secret, "<ts>.<rawBody>") hex. Perbandingan constant-time.
func VerifyWebhookSignature(secret, header string, rawBody []byte) bool {
	if secret == "" || header == "" {
		return false
	}

	var ts, sig string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "t="):
			ts = strings.TrimPrefix(part, "t=")
		case strings.HasPrefix(part, "v1="):
			sig = strings.TrimPrefix(part, "v1=")
		}
	}
	if ts == "" || sig == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sig))
}
