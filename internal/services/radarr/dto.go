package radarr

import (
	"encoding/json"
	"strings"

	"collectarr/internal/reconcile"
)

const unknownCollection = "Unknown Collection"

type collectionDTO struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Title  string            `json:"title"`
	Movies []json.RawMessage `json:"movies"`
}

type qualityProfileDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rootFolderDTO struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
}

// SystemStatus is the subset of /system/status used by readiness checks.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

type addOptionsDTO struct {
	SearchForMovie bool `json:"searchForMovie"`
}

type addMovieDTO struct {
	TMDBID           int           `json:"tmdbId"`
	Title            string        `json:"title"`
	Year             int           `json:"year"`
	QualityProfileID int           `json:"qualityProfileId"`
	TitleSlug        string        `json:"titleSlug"`
	RootFolderPath   string        `json:"rootFolderPath"`
	Monitored        bool          `json:"monitored"`
	AddOptions       addOptionsDTO `json:"addOptions"`
}

type validationFailureDTO struct {
	PropertyName string `json:"propertyName"`
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

func (dto collectionDTO) toCollection() reconcile.Collection {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		name = strings.TrimSpace(dto.Title)
	}
	if name == "" {
		name = unknownCollection
	}
	refs := make([]reconcile.MovieRef, 0, len(dto.Movies))
	for _, raw := range dto.Movies {
		refs = append(refs, decodeMovieRef(raw))
	}
	return reconcile.Collection{ID: dto.ID, Name: name, Movies: refs}
}

// decodeMovieRef picks the variant for one collection entry. A library id
// wins; otherwise the entry must carry tmdbId, title and year to be added.
// Fields are decoded one at a time so a single mistyped value does not hide
// the rest of the entry.
func decodeMovieRef(raw json.RawMessage) reconcile.MovieRef {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return reconcile.IncompleteRef{}
	}
	var (
		id, tmdbID, year int
		title            string
	)
	decodeField(fields, "movieId", &id)
	if id <= 0 {
		decodeField(fields, "id", &id)
	}
	decodeField(fields, "tmdbId", &tmdbID)
	decodeField(fields, "title", &title)
	decodeField(fields, "year", &year)

	switch {
	case id > 0:
		return reconcile.LibraryRef{MovieID: id, Title: title, Year: year}
	case tmdbID > 0 && strings.TrimSpace(title) != "" && year > 0:
		return reconcile.CatalogRef{TMDBID: tmdbID, Title: title, Year: year}
	default:
		return reconcile.IncompleteRef{Title: title, Year: year}
	}
}

// decodeMovie keeps every field of the record so it can be sent back intact.
// A record without a monitored flag counts as monitored.
func decodeMovie(data []byte) (reconcile.Movie, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return reconcile.Movie{}, err
	}
	movie := reconcile.Movie{Monitored: true, Fields: fields}
	decodeField(fields, "id", &movie.ID)
	decodeField(fields, "tmdbId", &movie.TMDBID)
	decodeField(fields, "title", &movie.Title)
	decodeField(fields, "year", &movie.Year)
	decodeField(fields, "monitored", &movie.Monitored)
	return movie, nil
}

// decodeField leaves out untouched when the key is missing, null or of an
// unexpected type.
func decodeField(fields map[string]json.RawMessage, key string, out any) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return
	}
	_ = json.Unmarshal(raw, out)
}

// encodeMovie returns the record as the server sent it with only the
// monitored flag changed. Records built without server fields fall back to
// the typed values.
func encodeMovie(movie reconcile.Movie) map[string]any {
	if len(movie.Fields) == 0 {
		body := map[string]any{
			"id":        movie.ID,
			"monitored": movie.Monitored,
		}
		if movie.TMDBID != 0 {
			body["tmdbId"] = movie.TMDBID
		}
		if movie.Title != "" {
			body["title"] = movie.Title
		}
		if movie.Year != 0 {
			body["year"] = movie.Year
		}
		return body
	}
	body := make(map[string]any, len(movie.Fields)+1)
	for key, raw := range movie.Fields {
		body[key] = raw
	}
	body["monitored"] = movie.Monitored
	return body
}

// isAlreadyExists reports whether a 400 body says the movie is already in the
// library.
func isAlreadyExists(body []byte) bool {
	var failures []validationFailureDTO
	if err := json.Unmarshal(body, &failures); err == nil {
		for _, failure := range failures {
			if failure.ErrorCode == "MovieExistsValidator" || mentionsExisting(failure.ErrorMessage) {
				return true
			}
		}
	}
	return mentionsExisting(string(body))
}

func mentionsExisting(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "already been added") || strings.Contains(lower, "already exists")
}
