package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"collectarr/internal/config"
	"collectarr/internal/notifications"
	"collectarr/internal/services"
)

type capturedRequest struct {
	path    string
	headers http.Header
	body    string
}

type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *recorder) handler(status int, response string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		r.mu.Lock()
		r.requests = append(r.requests, capturedRequest{path: req.URL.Path, headers: req.Header.Clone(), body: string(data)})
		r.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.requests...)
}

func TestNewServiceReturnsNoopWithoutTargets(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if err := svc.Send(context.Background(), notifications.Message{Body: "hello"}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := notifications.NewService(nil).Test(context.Background()); err != nil {
		t.Fatalf("expected nil config to yield noop, got %v", err)
	}
}

func TestTelegramSendRequestShape(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(http.StatusOK, `{"ok":true,"result":{}}`))
	defer server.Close()

	tg := notifications.NewTelegram(server.URL+"/", "123:abc", "-100200", server.Client())
	body := "🎬 *Radarr Collections updated!*"
	if err := tg.Send(context.Background(), notifications.Message{Title: "ignored", Body: body}); err != nil {
		t.Fatalf("send: %v", err)
	}

	requests := rec.all()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	req := requests[0]
	if req.path != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path %q", req.path)
	}
	if ct := req.headers.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", ct)
	}
	form, err := url.ParseQuery(req.body)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if form.Get("chat_id") != "-100200" || form.Get("text") != body || form.Get("parse_mode") != "Markdown" {
		t.Fatalf("unexpected form %v", form)
	}
}

func TestTelegramFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
	}{
		{name: "non 2xx", status: http.StatusBadRequest, response: `{"ok":false,"description":"Bad Request: chat not found"}`},
		{name: "ok false", status: http.StatusOK, response: `{"ok":false,"description":"Forbidden"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			server := httptest.NewServer(rec.handler(tc.status, tc.response))
			defer server.Close()

			tg := notifications.NewTelegram(server.URL, "token", "chat", server.Client())
			err := tg.Send(context.Background(), notifications.Message{Body: "x"})
			if !errors.Is(err, services.ErrDelivery) {
				t.Fatalf("expected delivery error, got %v", err)
			}
		})
	}
}

func TestTelegramTransportErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	tg := notifications.NewTelegram(base, "secret-token", "chat", nil)
	err := tg.Send(context.Background(), notifications.Message{Body: "x"})
	if !errors.Is(err, services.ErrDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if strings.Contains(err.Error(), "secret-token") {
		t.Fatalf("error leaks bot token: %v", err)
	}
}

func TestNtfySendRequestShape(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(http.StatusOK, `{}`))
	defer server.Close()

	ntfy := notifications.NewNtfy(server.URL+"/collectarr", server.Client())
	msg := notifications.Message{Title: "Radarr Collections", Body: "*bold*", Tags: []string{"movie_camera", "radarr"}}
	if err := ntfy.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	requests := rec.all()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	req := requests[0]
	if req.path != "/collectarr" || req.body != "*bold*" {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.headers.Get("Title") != "Radarr Collections" {
		t.Fatalf("unexpected title header %q", req.headers.Get("Title"))
	}
	if req.headers.Get("Tags") != "movie_camera,radarr" {
		t.Fatalf("unexpected tags header %q", req.headers.Get("Tags"))
	}
	if req.headers.Get("Markdown") != "yes" {
		t.Fatalf("expected markdown header, got %q", req.headers.Get("Markdown"))
	}
}

func TestNtfyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	err := notifications.NewNtfy(server.URL+"/t", server.Client()).Send(context.Background(), notifications.Message{Body: "x"})
	if !errors.Is(err, services.ErrDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestNewServiceFansOutToEveryChannel(t *testing.T) {
	tgRec := &recorder{}
	tgServer := httptest.NewServer(tgRec.handler(http.StatusInternalServerError, `{"ok":false}`))
	defer tgServer.Close()
	ntfyRec := &recorder{}
	ntfyServer := httptest.NewServer(ntfyRec.handler(http.StatusOK, `{}`))
	defer ntfyServer.Close()

	cfg := config.Default()
	cfg.Notifications.Telegram.APIURL = tgServer.URL
	cfg.Notifications.Telegram.BotToken = "token"
	cfg.Notifications.Telegram.ChatID = "chat"
	cfg.Notifications.Ntfy.Topic = ntfyServer.URL + "/topic"

	svc := notifications.NewService(&cfg)
	err := svc.Send(context.Background(), notifications.Message{Title: "t", Body: "b"})
	if !errors.Is(err, services.ErrDelivery) {
		t.Fatalf("expected joined delivery error, got %v", err)
	}
	if len(tgRec.all()) != 1 || len(ntfyRec.all()) != 1 {
		t.Fatalf("expected both channels attempted, telegram=%d ntfy=%d", len(tgRec.all()), len(ntfyRec.all()))
	}
}

func TestTestNotificationUsesTestMessage(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(http.StatusOK, `{}`))
	defer server.Close()

	if err := notifications.NewNtfy(server.URL, server.Client()).Test(context.Background()); err != nil {
		t.Fatalf("test notification: %v", err)
	}
	requests := rec.all()
	if len(requests) != 1 || !strings.Contains(requests[0].body, "Notification system test") {
		t.Fatalf("unexpected requests %+v", requests)
	}
	if requests[0].headers.Get("Title") != "Collectarr - Test" {
		t.Fatalf("unexpected title %q", requests[0].headers.Get("Title"))
	}
}
