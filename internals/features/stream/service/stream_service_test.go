package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(secret, ts string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"uid":"abc"}`)
	sig := signBody("whsec", "1700000000", body)
	header := fmt.Sprintf("t=%s,v1=%s", "1700000000", sig)

	assert.True(t, VerifyWebhookSignature("whsec", header, body))

	// Body berubah → sig tidak cocok
	assert.False(t, VerifyWebhookSignature("whsec", header, []byte(`{"uid":"tampered"}`)))
	// Secret salah
	assert.False(t, VerifyWebhookSignature("other", header, body))
	// Header rusak / kosong
	assert.False(t, VerifyWebhookSignature("whsec", "v1="+sig, body))
	assert.False(t, VerifyWebhookSignature("whsec", "", body))
	assert.False(t, VerifyWebhookSignature("", header, body))
}

func TestCreateDirectUpload(t *testing.T) {
	var gotPath, gotAuth string
	var gotMeta map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		gotMeta, _ = payload["meta"].(map[string]any)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result":  map[string]string{"uploadURL": "https://upload.example/xyz", "uid": "vid-1"},
		})
	}))
	defer srv.Close()

	sc := NewStreamClientWith(srv.URL, "acct-1", "token-1")
	upload, err := sc.CreateDirectUpload(context.Background(), "lesson-uuid")
	require.NoError(t, err)

	assert.Equal(t, "/accounts/acct-1/stream/direct_upload", gotPath)
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, "lesson-uuid", gotMeta["lessonId"])
	assert.Equal(t, "https://upload.example/xyz", upload.UploadURL)
	assert.Equal(t, "vid-1", upload.UID)
}

func TestCreateDirectUpload_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sc := NewStreamClientWith(srv.URL, "acct-1", "token-1")
	_, err := sc.CreateDirectUpload(context.Background(), "lesson-uuid")
	assert.Error(t, err)
}

func TestUpdateDisplayMetadata(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	sc := NewStreamClientWith(srv.URL, "acct-1", "token-1")
	require.NoError(t, sc.UpdateDisplayMetadata(context.Background(), "vid-1", "Intro"))
	assert.Equal(t, "/accounts/acct-1/stream/vid-1", gotPath)
}
