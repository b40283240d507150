package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// WebhookNotifier POSTs the notification as JSON to a configured endpoint.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

func (w WebhookNotifier) Send(ctx context.Context, n Notification) error {
	if w.Client == nil {
		w.Client = &http.Client{Timeout: 10 * time.Second}
	}

	b, _ := json.Marshal(n)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("webhook error: " + resp.Status)
	}
	return nil
}
