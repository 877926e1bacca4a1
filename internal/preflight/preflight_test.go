package preflight

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"collectarr/internal/config"
	"collectarr/internal/services"
	"collectarr/internal/services/radarr"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

type stubProbe struct {
	status     radarr.SystemStatus
	statusErr  error
	profileID  int
	profileErr error
	root       string
	rootErr    error
}

func (s stubProbe) SystemStatus(context.Context) (radarr.SystemStatus, error) {
	return s.status, s.statusErr
}

func (s stubProbe) DefaultQualityProfileID(context.Context) (int, error) {
	return s.profileID, s.profileErr
}

func (s stubProbe) DefaultRootFolderPath(context.Context) (string, error) {
	return s.root, s.rootErr
}

func TestCheckRadarr(t *testing.T) {
	tests := []struct {
		name       string
		probe      stubProbe
		wantPassed []bool
		wantDetail string
	}{
		{
			name:       "healthy",
			probe:      stubProbe{status: radarr.SystemStatus{Version: "5.2.6"}, profileID: 4, root: "/movies"},
			wantPassed: []bool{true, true, true},
			wantDetail: "Reachable (v5.2.6)",
		},
		{
			name:       "bad key",
			probe:      stubProbe{statusErr: services.Wrap(services.ErrAuth, "radarr", "system status", "", nil)},
			wantPassed: []bool{false},
			wantDetail: "auth failed (invalid api key)",
		},
		{
			name: "no profiles",
			probe: stubProbe{
				status:     radarr.SystemStatus{Version: "5.2.6"},
				profileErr: services.Wrap(services.ErrConfiguration, "radarr", "list quality profiles", "no quality profiles found", nil),
				root:       "/movies",
			},
			wantPassed: []bool{true, false, true},
			wantDetail: "Reachable (v5.2.6)",
		},
		{
			name: "no root folders",
			probe: stubProbe{
				status:    radarr.SystemStatus{},
				profileID: 1,
				rootErr:   services.Wrap(services.ErrConfiguration, "radarr", "list root folders", "no root folders found", nil),
			},
			wantPassed: []bool{true, true, false},
			wantDetail: "Reachable",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := CheckRadarr(context.Background(), tc.probe)
			if len(results) != len(tc.wantPassed) {
				t.Fatalf("expected %d results, got %d (%+v)", len(tc.wantPassed), len(results), results)
			}
			for i, want := range tc.wantPassed {
				if results[i].Passed != want {
					t.Fatalf("result %d (%s): passed=%v want %v (%s)", i, results[i].Name, results[i].Passed, want, results[i].Detail)
				}
			}
			if results[0].Detail != tc.wantDetail {
				t.Fatalf("unexpected detail %q", results[0].Detail)
			}
		})
	}
}

func TestSummarizeErrorStripsConfigurationMarker(t *testing.T) {
	err := services.Wrap(services.ErrConfiguration, "radarr", "list root folders", "no root folders found", nil)
	if got := summarizeError(err); got != "radarr: list root folders: no root folders found" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := summarizeError(errors.New("boom")); got != "boom" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestCheckTelegram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botgood-token/getMe" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"ok":false,"description":"Unauthorized"}`)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true,"result":{"username":"collectarr_bot"}}`)
	}))
	defer srv.Close()

	if result := CheckTelegram(context.Background(), srv.URL, "good-token"); !result.Passed || result.Detail != "bot @collectarr_bot" {
		t.Fatalf("expected pass, got %+v", result)
	}
	if result := CheckTelegram(context.Background(), srv.URL, "bad-token"); result.Passed || !strings.Contains(result.Detail, "invalid bot token") {
		t.Fatalf("expected auth failure, got %+v", result)
	}
	if result := CheckTelegram(context.Background(), srv.URL, ""); result.Passed {
		t.Fatal("expected failure for missing token")
	}
}

func TestCheckNtfy(t *testing.T) {
	tests := []struct {
		topic string
		pass  bool
	}{
		{topic: "https://ntfy.sh/collectarr", pass: true},
		{topic: "http://ntfy.local:8080/radarr", pass: true},
		{topic: "https://ntfy.sh/", pass: false},
		{topic: "collectarr", pass: false},
		{topic: "ftp://ntfy.sh/topic", pass: false},
	}
	for _, tc := range tests {
		if got := CheckNtfy(tc.topic); got.Passed != tc.pass {
			t.Fatalf("CheckNtfy(%q) passed=%v want %v (%s)", tc.topic, got.Passed, tc.pass, got.Detail)
		}
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_HealthyConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/v3/system/status":
			_, _ = io.WriteString(w, `{"appName":"Radarr","version":"5.2.6"}`)
		case "/api/v3/qualityprofile":
			_, _ = io.WriteString(w, `[{"id":1}]`)
		case "/api/v3/rootfolder":
			_, _ = io.WriteString(w, `[{"id":1,"path":"/movies"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Radarr.URL = srv.URL
	cfg.Radarr.APIKey = "key"
	cfg.Notifications.Ntfy.Topic = "https://ntfy.sh/collectarr"
	cfg.Logging.Dir = t.TempDir()
	cfg.Run.LockPath = filepath.Join(t.TempDir(), "collectarr.lock")

	results := RunAll(context.Background(), &cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d (%+v)", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("expected no failures")
	}
}

func TestRunAll_ReportsMissingNotifier(t *testing.T) {
	cfg := config.Default()
	cfg.Radarr.URL = "http://127.0.0.1:1"
	cfg.Radarr.APIKey = "key"

	results := RunAll(context.Background(), &cfg)
	if !Failed(results) {
		t.Fatal("expected failures")
	}
	found := false
	for _, r := range results {
		if r.Name == "Notifications" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected notifications result, got %+v", results)
	}
}
