package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turfbook/models"
)

func testEvent(kind models.BookingStatus) models.NotificationEvent {
	return models.NotificationEvent{
		BookingID:    "b1",
		Kind:         kind,
		CustomerName: "Ravi",
		Phone:        "9123456789",
		Date:         "2026-03-01",
		Start:        1080,
		End:          1140,
		Amount:       500,
		At:           time.Now().UTC(),
	}
}

func TestMessageFor(t *testing.T) {
	cases := []struct {
		kind models.BookingStatus
		want string
	}{
		{models.BookingStatusConfirmed, "confirmed"},
		{models.BookingStatusRejected, "could not be accepted"},
		{models.BookingStatusHold, "on hold"},
		{models.BookingStatusCancelled, "cancelled"},
		{models.BookingStatusNoShow, "no-show"},
	}
	for _, tc := range cases {
		msg := MessageFor(testEvent(tc.kind))
		assert.Contains(t, msg, "Ravi", "kind=%s", tc.kind)
		assert.Contains(t, msg, "2026-03-01 18:00-19:00", "kind=%s", tc.kind)
		assert.Contains(t, msg, tc.want, "kind=%s", tc.kind)
	}

	assert.Contains(t, MessageFor(testEvent(models.BookingStatusConfirmed)), "Rs.500")
}

func TestWhatsAppClient_Send(t *testing.T) {
	var got whatsAppTextRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "/phone-1/messages"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{{"id": "wamid.1"}},
		})
	}))
	defer srv.Close()

	wa := NewWhatsAppClient("test-token", "phone-1")
	wa.apiBase = srv.URL

	err := wa.Send(context.Background(), testEvent(models.BookingStatusConfirmed))
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "919123456789", got.To)
	assert.Contains(t, got.Text.Body, "confirmed")
}

func TestWhatsAppClient_SendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid recipient", "code": 131026},
		})
	}))
	defer srv.Close()

	wa := NewWhatsAppClient("test-token", "phone-1")
	wa.apiBase = srv.URL

	err := wa.Send(context.Background(), testEvent(models.BookingStatusConfirmed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}
