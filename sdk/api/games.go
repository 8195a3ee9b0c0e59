package api

import (
	"context"
	"net/http"

	"github.com/gamerecs/gamerecs/internal/restmachinery"
	"github.com/pkg/errors"
)

// Game is a game from the catalog.
type Game struct {
	GameID        int64   `json:"gameId"`
	IGDBID        int64   `json:"igdbId"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	ReleaseDate   string  `json:"releaseDate,omitempty"`
	CoverImageURL string  `json:"coverImageUrl,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
	Genres        []Genre `json:"genres,omitempty"`
}

// Genre is a game genre.
type Genre struct {
	GenreID int64  `json:"genreId"`
	Name    string `json:"name"`
}

// SyncResult is the outcome of a catalog sync from IGDB.
type SyncResult struct {
	Message string         `json:"message"`
	Games   []IGDBGameInfo `json:"data"`
}

// IGDBGameInfo is a game as IGDB describes it.
type IGDBGameInfo struct {
	IGDBID        int64  `json:"id"`
	Title         string `json:"name"`
	Description   string `json:"summary,omitempty"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
}

// GamesClient is the specialized client for the game catalog.
type GamesClient interface {
	// Search returns the catalog's games matching the query.
	Search(ctx context.Context, query string) ([]Game, error)
	// Sync asks the API to search IGDB for the query and persist what it
	// finds to the catalog.
	Sync(ctx context.Context, query string) (SyncResult, error)
	// ClearCache clears the API's cache of IGDB searches. Only administrators
	// may do this.
	ClearCache(context.Context) error
}

type gamesClient struct {
	*restmachinery.BaseClient
}

func (g *gamesClient) Search(ctx context.Context, query string) ([]Game, error) {
	if query == "" {
		return nil, errors.New("search query must not be empty")
	}
	games := []Game{}
	return games, g.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "api/igdb/search",
			QueryParams: map[string]string{"query": query},
			SuccessCode: http.StatusOK,
			RespObj:     &games,
		},
	)
}

func (g *gamesClient) Sync(ctx context.Context, query string) (SyncResult, error) {
	result := SyncResult{}
	if query == "" {
		return result, errors.New("sync query must not be empty")
	}
	return result, g.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "api/igdb/update",
			QueryParams: map[string]string{"query": query},
			SuccessCode: http.StatusOK,
			RespObj:     &result,
		},
	)
}

func (g *gamesClient) ClearCache(ctx context.Context) error {
	return g.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "api/igdb/clear-cache",
			SuccessCode: http.StatusOK,
		},
	)
}
