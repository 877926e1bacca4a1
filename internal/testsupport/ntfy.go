package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// NtfyMessage is one message received by FakeNtfy.
type NtfyMessage struct {
	Title string
	Body  string
}

// FakeNtfy records messages published to any topic.
type FakeNtfy struct {
	Server *httptest.Server

	mu       sync.Mutex
	messages []NtfyMessage
}

// NewFakeNtfy starts a recording ntfy server.
func NewFakeNtfy(t testing.TB) *FakeNtfy {
	t.Helper()
	f := &FakeNtfy{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.messages = append(f.messages, NtfyMessage{Title: r.Header.Get("Title"), Body: string(body)})
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(f.Server.Close)
	return f
}

// Topic returns a topic URL on the fake server.
func (f *FakeNtfy) Topic() string {
	return f.Server.URL + "/collectarr"
}

// Messages returns the messages received so far.
func (f *FakeNtfy) Messages() []NtfyMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]NtfyMessage(nil), f.messages...)
}
