package radarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"collectarr/internal/reconcile"
	"collectarr/internal/services"
)

// ListCollections returns every collection tracked by the server in server
// order, with each movie entry already classified.
func (c *Client) ListCollections(ctx context.Context) ([]reconcile.Collection, error) {
	var dtos []collectionDTO
	if err := c.getJSON(ctx, "list collections", "/collection", nil, &dtos); err != nil {
		return nil, err
	}
	collections := make([]reconcile.Collection, 0, len(dtos))
	for _, dto := range dtos {
		collections = append(collections, dto.toCollection())
	}
	return collections, nil
}

// GetMovie fetches the full library record for id.
func (c *Client) GetMovie(ctx context.Context, id int) (reconcile.Movie, error) {
	data, err := c.do(ctx, http.MethodGet, "/movie/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return reconcile.Movie{}, wrapRequestError("get movie", err)
	}
	movie, err := decodeMovie(data)
	if err != nil {
		return reconcile.Movie{}, services.Wrap(services.ErrTransport, component, "get movie", "decode response", err)
	}
	return movie, nil
}

// LookupMovieByTMDB returns the library record for a TMDB id, or ErrNotFound
// when the library does not contain it.
func (c *Client) LookupMovieByTMDB(ctx context.Context, tmdbID int) (reconcile.Movie, error) {
	query := url.Values{"tmdbId": []string{strconv.Itoa(tmdbID)}}
	data, err := c.do(ctx, http.MethodGet, "/movie", query, nil)
	if err != nil {
		return reconcile.Movie{}, wrapRequestError("lookup movie", err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return reconcile.Movie{}, services.Wrap(services.ErrTransport, component, "lookup movie", "decode response", err)
	}
	if len(records) == 0 {
		return reconcile.Movie{}, services.Wrap(services.ErrNotFound, component, "lookup movie", fmt.Sprintf("tmdb id %d not in library", tmdbID), nil)
	}
	movie, err := decodeMovie(records[0])
	if err != nil {
		return reconcile.Movie{}, services.Wrap(services.ErrTransport, component, "lookup movie", "decode response", err)
	}
	return movie, nil
}

// UpdateMovie sends the complete record back to the server.
func (c *Client) UpdateMovie(ctx context.Context, movie reconcile.Movie) (reconcile.Movie, error) {
	data, err := c.do(ctx, http.MethodPut, "/movie/"+strconv.Itoa(movie.ID), nil, encodeMovie(movie))
	if err != nil {
		return reconcile.Movie{}, wrapRequestError("update movie", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return movie, nil
	}
	updated, err := decodeMovie(data)
	if err != nil {
		return movie, nil
	}
	return updated, nil
}

// AddMovie creates a monitored library entry for ref. An answer saying the
// movie is already present yields AddAlreadyExists, with the existing record
// attached when it can be looked up. Creation waits for the addition gate.
func (c *Client) AddMovie(ctx context.Context, ref reconcile.CatalogRef, defaults reconcile.Defaults) (reconcile.AddResult, error) {
	if err := c.gate.wait(ctx); err != nil {
		return reconcile.AddResult{}, services.Wrap(services.ErrTransport, component, "add movie", "waiting for add delay", err)
	}

	payload := addMovieDTO{
		TMDBID:           ref.TMDBID,
		Title:            ref.Title,
		Year:             ref.Year,
		QualityProfileID: defaults.QualityProfileID,
		TitleSlug:        TitleSlug(ref.Title, ref.Year),
		RootFolderPath:   defaults.RootFolderPath,
		Monitored:        true,
		AddOptions:       addOptionsDTO{SearchForMovie: c.searchOnAdd},
	}
	data, err := c.do(ctx, http.MethodPost, "/movie", nil, payload)
	if err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) && statusErr.status == http.StatusBadRequest && isAlreadyExists(statusErr.body) {
			existing, lookupErr := c.LookupMovieByTMDB(ctx, ref.TMDBID)
			if lookupErr != nil {
				existing = reconcile.Movie{TMDBID: ref.TMDBID, Title: ref.Title, Year: ref.Year, Monitored: true}
			}
			return reconcile.AddResult{Status: reconcile.AddAlreadyExists, Movie: existing}, nil
		}
		return reconcile.AddResult{}, wrapRequestError("add movie", err)
	}
	c.gate.mark()

	created, err := decodeMovie(data)
	if err != nil {
		created = reconcile.Movie{TMDBID: ref.TMDBID, Title: ref.Title, Year: ref.Year, Monitored: true}
	}
	return reconcile.AddResult{Status: reconcile.AddCreated, Movie: created}, nil
}
