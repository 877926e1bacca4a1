package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeRadarr is an in-memory Radarr v3 server covering the endpoints the
// reconciler uses. Added movies become library entries, so a second run sees
// the effects of the first.
type FakeRadarr struct {
	Server *httptest.Server
	APIKey string

	mu              sync.Mutex
	qualityProfiles []int
	rootFolders     []string
	collections     []map[string]any
	movies          map[int]map[string]any
	nextID          int
	updates         int
	additions       []map[string]any
}

// NewFakeRadarr starts a server with one quality profile and one root folder.
func NewFakeRadarr(t testing.TB) *FakeRadarr {
	t.Helper()
	f := &FakeRadarr{
		APIKey:          "fake-radarr-key",
		qualityProfiles: []int{1},
		rootFolders:     []string{"/movies"},
		movies:          map[int]map[string]any{},
		nextID:          1000,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server root.
func (f *FakeRadarr) URL() string {
	return f.Server.URL
}

// SetDefaults replaces the quality profile ids and root folder paths.
func (f *FakeRadarr) SetDefaults(profiles []int, folders []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.qualityProfiles = profiles
	f.rootFolders = folders
}

// AddLibraryMovie seeds a library movie.
func (f *FakeRadarr) AddLibraryMovie(id, tmdbID int, title string, year int, monitored bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies[id] = map[string]any{
		"id":        id,
		"tmdbId":    tmdbID,
		"title":     title,
		"year":      year,
		"monitored": monitored,
		"path":      "/movies/" + title,
	}
}

// AddCollection seeds a collection. Entries are sent verbatim.
func (f *FakeRadarr) AddCollection(name string, entries ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections = append(f.collections, map[string]any{
		"id":     len(f.collections) + 1,
		"title":  name,
		"movies": entries,
	})
}

// Monitored reports the monitored flag of a library movie.
func (f *FakeRadarr) Monitored(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	monitored, _ := f.movies[id]["monitored"].(bool)
	return monitored
}

// Updates returns the number of PUT /movie calls served.
func (f *FakeRadarr) Updates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates
}

// Additions returns the POST /movie payloads that created a movie.
func (f *FakeRadarr) Additions() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.additions...)
}

func (f *FakeRadarr) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Api-Key") != f.APIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v3")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && path == "/system/status":
		writeJSON(w, http.StatusOK, map[string]string{"appName": "Radarr", "version": "5.2.6"})
	case r.Method == http.MethodGet && path == "/qualityprofile":
		profiles := make([]map[string]any, 0, len(f.qualityProfiles))
		for _, id := range f.qualityProfiles {
			profiles = append(profiles, map[string]any{"id": id, "name": "Profile " + strconv.Itoa(id)})
		}
		writeJSON(w, http.StatusOK, profiles)
	case r.Method == http.MethodGet && path == "/rootfolder":
		folders := make([]map[string]any, 0, len(f.rootFolders))
		for i, p := range f.rootFolders {
			folders = append(folders, map[string]any{"id": i + 1, "path": p})
		}
		writeJSON(w, http.StatusOK, folders)
	case r.Method == http.MethodGet && path == "/collection":
		writeJSON(w, http.StatusOK, f.collections)
	case r.Method == http.MethodGet && path == "/movie":
		tmdbID, _ := strconv.Atoi(r.URL.Query().Get("tmdbId"))
		matches := []map[string]any{}
		if movie := f.findByTMDB(tmdbID); movie != nil {
			matches = append(matches, movie)
		}
		writeJSON(w, http.StatusOK, matches)
	case r.Method == http.MethodPost && path == "/movie":
		f.handleAdd(w, r)
	case strings.HasPrefix(path, "/movie/"):
		id, err := strconv.Atoi(strings.TrimPrefix(path, "/movie/"))
		movie, ok := f.movies[id]
		if err != nil || !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "NotFound"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, movie)
		case http.MethodPut:
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
				return
			}
			f.movies[id] = body
			f.updates++
			writeJSON(w, http.StatusAccepted, body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "NotFound"})
	}
}

func (f *FakeRadarr) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	tmdbID := toInt(payload["tmdbId"])
	if f.findByTMDB(tmdbID) != nil {
		writeJSON(w, http.StatusBadRequest, []map[string]string{{
			"propertyName": "TmdbId",
			"errorMessage": "This movie has already been added",
			"errorCode":    "MovieExistsValidator",
		}})
		return
	}
	f.nextID++
	movie := map[string]any{
		"id":        f.nextID,
		"tmdbId":    tmdbID,
		"title":     payload["title"],
		"year":      toInt(payload["year"]),
		"monitored": payload["monitored"],
	}
	f.movies[f.nextID] = movie
	f.additions = append(f.additions, payload)
	writeJSON(w, http.StatusCreated, movie)
}

func (f *FakeRadarr) findByTMDB(tmdbID int) map[string]any {
	if tmdbID == 0 {
		return nil
	}
	for _, movie := range f.movies {
		if toInt(movie["tmdbId"]) == tmdbID {
			return movie
		}
	}
	return nil
}

func toInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := json.Marshal(body)
	_, _ = io.WriteString(w, string(data))
}
