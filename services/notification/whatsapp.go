package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"turfbook/models"
	"turfbook/utils"
)

const whatsAppAPIBase = "https://graph.facebook.com/v19.0"

// WhatsAppClient sends booking notifications through the WhatsApp Cloud API.
type WhatsAppClient struct {
	Token   string
	PhoneID string
	Client  *http.Client

	apiBase string
}

type whatsAppTextRequest struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             whatsAppTextBody `json:"text"`
}

type whatsAppTextBody struct {
	Body string `json:"body"`
}

type whatsAppResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func NewWhatsAppClient(token, phoneID string) *WhatsAppClient {
	return &WhatsAppClient{
		Token:   token,
		PhoneID: phoneID,
		Client:  &http.Client{},
		apiBase: whatsAppAPIBase,
	}
}

// Send delivers the message for a booking event to the customer's number.
func (w *WhatsAppClient) Send(ctx context.Context, event models.NotificationEvent) error {
	payload := whatsAppTextRequest{
		MessagingProduct: "whatsapp",
		To:               "91" + event.Phone,
		Type:             "text",
		Text:             whatsAppTextBody{Body: MessageFor(event)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", w.apiBase, w.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read whatsapp response: %w", err)
	}

	var parsed whatsAppResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("parse whatsapp response: %w", err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("whatsapp send failed (code %d): %s", parsed.Error.Code, parsed.Error.Message)
	}
	return nil
}

// MessageFor renders the customer-facing text for a booking event.
func MessageFor(event models.NotificationEvent) string {
	window := fmt.Sprintf("%s %s-%s",
		event.Date, utils.FormatMinutes(event.Start), utils.FormatMinutes(event.End))

	switch event.Kind {
	case models.BookingStatusConfirmed:
		return fmt.Sprintf("Hi %s, your turf booking for %s is confirmed. Amount: Rs.%d. See you there!",
			event.CustomerName, window, event.Amount)
	case models.BookingStatusRejected:
		return fmt.Sprintf("Hi %s, your turf booking request for %s could not be accepted. Any payment made will be refunded.",
			event.CustomerName, window)
	case models.BookingStatusHold:
		return fmt.Sprintf("Hi %s, your turf booking for %s is on hold pending review. We'll update you shortly.",
			event.CustomerName, window)
	case models.BookingStatusCancelled:
		return fmt.Sprintf("Hi %s, your turf booking for %s has been cancelled.",
			event.CustomerName, window)
	case models.BookingStatusNoShow:
		return fmt.Sprintf("Hi %s, you were marked as a no-show for your turf booking on %s.",
			event.CustomerName, window)
	default:
		return fmt.Sprintf("Hi %s, your turf booking for %s is now %s.",
			event.CustomerName, window, event.Kind)
	}
}
