package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const GraphAPIBaseURL = "https://graph.facebook.com/v22.0"

// WhatsAppClient sends text messages through the WhatsApp Cloud API.
type WhatsAppClient struct {
	httpClient    *http.Client
	baseURL       string
	accessToken   string
	phoneNumberID string
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

func NewWhatsAppClient(accessToken, phoneNumberID string) *WhatsAppClient {
	return &WhatsAppClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:       GraphAPIBaseURL,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
	}
}

// Send posts a text message to the recipient's phone number
func (c *WhatsAppClient) Send(ctx context.Context, recipient, message string) error {
	payload := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "text",
		Text:             whatsAppText{Body: message},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp API error: %d - %s", resp.StatusCode, string(respBody))
	}

	return nil
}
