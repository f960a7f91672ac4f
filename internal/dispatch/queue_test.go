package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/weather"
)

type recordingSender struct {
	mu   sync.Mutex
	got  []Message
	fail bool
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, msg)
	if s.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func TestQueueDeliversEverything(t *testing.T) {
	sender := &recordingSender{}
	q := NewQueue(sender, 4, time.Second)
	q.StartWorkers(3)

	for i := 0; i < 20; i++ {
		require.NoError(t, q.Submit(Message{Recipient: "r", Report: weather.Report{ID: string(rune('a' + i))}}))
	}
	q.Close()

	assert.Len(t, sender.got, 20)
}

func TestQueueSubmitAfterClose(t *testing.T) {
	q := NewQueue(&recordingSender{}, 1, 0)
	q.StartWorkers(1)
	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Submit(Message{}), ErrQueueClosed)
}

func TestQueueSurvivesSenderErrors(t *testing.T) {
	sender := &recordingSender{fail: true}
	q := NewQueue(sender, 0, 0)
	q.StartWorkers(0)

	require.NoError(t, q.Submit(Message{Recipient: "a"}))
	require.NoError(t, q.Submit(Message{Recipient: "b"}))
	q.Close()

	assert.Len(t, sender.got, 2)
}

func TestWebhookSender(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, time.Second)
	msg := Message{Recipient: "48.1000,11.5000", Report: weather.Report{ID: "x", Text: "<strong>hi</strong>", ParseMode: "HTML"}}
	require.NoError(t, s.Send(context.Background(), msg))

	assert.Equal(t, msg.Recipient, got.Recipient)
	assert.Equal(t, msg.Report.Text, got.Report.Text)
	assert.Equal(t, "HTML", got.Report.ParseMode)
}

func TestWebhookSenderRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := NewWebhookSender(srv.URL, time.Second).Send(context.Background(), Message{})
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), Message{Recipient: "r"}))
}
