package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	slackapi "github.com/slack-go/slack"
)

func TestWebhookNotifier(t *testing.T) {
	var received Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := Notification{
		InterventionID: uuid.New(),
		Kind:           KindScheduled,
		Title:          "Intervention scheduled",
		Body:           "visit on 2025-03-10",
	}
	if err := (WebhookNotifier{URL: srv.URL}).Send(context.Background(), n); err != nil {
		t.Fatalf("send: %v", err)
	}
	if received.InterventionID != n.InterventionID || received.Kind != KindScheduled {
		t.Fatalf("unexpected payload: %+v", received)
	}
}

func TestWebhookNotifierServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := (WebhookNotifier{URL: srv.URL}).Send(context.Background(), Notification{})
	if err == nil {
		t.Fatalf("expected error on 502")
	}
}

type fakeSlackClient struct {
	channel string
	calls   int
}

func (f *fakeSlackClient) PostMessageContext(_ context.Context, channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	f.channel = channelID
	f.calls++
	return channelID, "ts", nil
}

func TestSlackNotifier(t *testing.T) {
	fake := &fakeSlackClient{}
	s := &SlackNotifier{client: fake, channelID: "C123"}
	err := s.Send(context.Background(), Notification{
		InterventionID: uuid.New(),
		Kind:           KindReminder,
		Title:          "Upcoming intervention visit",
		Body:           "tomorrow 14:00",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if fake.calls != 1 || fake.channel != "C123" {
		t.Fatalf("expected one post to C123, got %d to %q", fake.calls, fake.channel)
	}
}

func TestNewSlackNotifierValidation(t *testing.T) {
	if _, err := NewSlackNotifier("", "C123"); err == nil {
		t.Fatalf("expected error for missing token")
	}
	if _, err := NewSlackNotifier("xoxb-token", ""); err == nil {
		t.Fatalf("expected error for missing channel")
	}
}

func TestNoopNotifierRecords(t *testing.T) {
	n := &NoopNotifier{}
	_ = n.Send(context.Background(), Notification{Kind: KindAllRejected})
	_ = n.Send(context.Background(), Notification{Kind: KindScheduled})
	sent := n.Sent()
	if len(sent) != 2 || sent[0].Kind != KindAllRejected {
		t.Fatalf("unexpected recorded notifications: %+v", sent)
	}
}
