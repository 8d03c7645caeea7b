package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FCMSender posts data-only messages to the push gateway. The client app
// decides whether to surface a notification.
type FCMSender struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
}

func NewFCMSender(endpoint, serverKey string, timeout time.Duration) *FCMSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FCMSender{
		endpoint:  endpoint,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type fcmMessage struct {
	To       string            `json:"to"`
	Data     map[string]string `json:"data"`
	Priority string            `json:"priority"`
}

func (s *FCMSender) Send(ctx context.Context, token string, data map[string]string) error {
	body, err := json.Marshal(fcmMessage{
		To:       token,
		Data:     data,
		Priority: "high",
	})
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push gateway status %d", resp.StatusCode)
	}
	return nil
}
