package services_test

import (
	"errors"
	"strings"
	"testing"

	"collectarr/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "radarr", "list collections", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"radarr", "list collections", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker for nil marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "transport", err: services.Wrap(services.ErrTransport, "radarr", "get", "", nil), want: true},
		{name: "auth", err: services.Wrap(services.ErrAuth, "radarr", "get", "", nil), want: true},
		{name: "configuration", err: services.Wrap(services.ErrConfiguration, "radarr", "root folders", "none", nil), want: true},
		{name: "not found", err: services.Wrap(services.ErrNotFound, "radarr", "movie", "", nil), want: false},
		{name: "delivery", err: services.Wrap(services.ErrDelivery, "telegram", "send", "", nil), want: false},
		{name: "plain", err: errors.New("other"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.IsFatal(tc.err); got != tc.want {
				t.Fatalf("IsFatal(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
