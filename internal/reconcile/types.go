package reconcile

import (
	"encoding/json"
	"fmt"
)

// Collection is a snapshot of one Radarr collection. Name is already resolved
// by the media server client; the engine never guesses at field fallbacks.
type Collection struct {
	ID     int
	Name   string
	Movies []MovieRef
}

// MovieRef is one entry of a collection. It is exactly one of LibraryRef,
// CatalogRef or IncompleteRef.
type MovieRef interface {
	isMovieRef()
}

// LibraryRef points at a movie that already exists in the library.
type LibraryRef struct {
	MovieID int
	Title   string
	Year    int
}

// CatalogRef points at a TMDB catalog movie that is not in the library yet.
type CatalogRef struct {
	TMDBID int
	Title  string
	Year   int
}

// IncompleteRef is an entry missing the fields needed to monitor or add it.
type IncompleteRef struct {
	Title string
	Year  int
}

func (LibraryRef) isMovieRef()    {}
func (CatalogRef) isMovieRef()    {}
func (IncompleteRef) isMovieRef() {}

// Movie is a library movie record. Fields carries every attribute returned by
// the server, verbatim; clients serialize it back on update so nothing the
// engine does not touch is lost.
type Movie struct {
	ID        int
	TMDBID    int
	Title     string
	Year      int
	Monitored bool
	Fields    map[string]json.RawMessage
}

// Label renders the movie as "Title (Year)".
func (m Movie) Label() string {
	return label(m.Title, m.Year)
}

// Defaults are the settings applied to every movie added during a run.
type Defaults struct {
	QualityProfileID int
	RootFolderPath   string
}

// AddStatus distinguishes the non-error outcomes of an addition.
type AddStatus int

const (
	// AddCreated means the movie was created and is now monitored.
	AddCreated AddStatus = iota
	// AddAlreadyExists means the server already tracks the movie.
	AddAlreadyExists
)

func (s AddStatus) String() string {
	switch s {
	case AddCreated:
		return "created"
	case AddAlreadyExists:
		return "already_exists"
	default:
		return fmt.Sprintf("add_status(%d)", int(s))
	}
}

// AddResult is returned by a successful add call. Failures are errors.
type AddResult struct {
	Status AddStatus
	Movie  Movie
}

func label(title string, year int) string {
	return fmt.Sprintf("%s (%d)", title, year)
}
