package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gamerecs/gamerecs/internal/restmachinery"
	"github.com/pkg/errors"
)

const (
	libraryPath          = "api/game-library"
	paginatedLibraryPath = "api/game-library/paginated"

	// DefaultPageSize is the page size the API uses when none is specified.
	DefaultPageSize = 10
)

// LibrarySort is a field the games in a library can be sorted by.
type LibrarySort string

const (
	// SortByTitle sorts games by title. It is the API's default.
	SortByTitle LibrarySort = "title"
	// SortByReleaseDate sorts games by release date.
	SortByReleaseDate LibrarySort = "releaseDate"
)

// LibraryListOptions represents criteria for listing the games in a library.
type LibraryListOptions struct {
	// SortBy is the field to sort by. If empty, the API sorts by title.
	SortBy LibrarySort
	// Genre, if set, restricts the listing to games of the named genre.
	Genre string
}

// LibraryPageOptions represents criteria for retrieving one page of a library.
type LibraryPageOptions struct {
	LibraryListOptions
	// Page is the zero-based page number.
	Page int
	// Size is the number of games per page. If zero, DefaultPageSize is used.
	Size int
}

// Library is the authenticated user's game library.
type Library struct {
	LibraryID int64  `json:"libraryId"`
	Games     []Game `json:"games"`
}

// LibraryPage is one page of the authenticated user's game library.
type LibraryPage struct {
	LibraryID     int64  `json:"libraryId"`
	Games         []Game `json:"games"`
	CurrentPage   int    `json:"currentPage"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int64  `json:"totalElements"`
	PageSize      int    `json:"pageSize"`
}

// HasMore reports whether there are pages after this one.
func (l LibraryPage) HasMore() bool {
	return l.CurrentPage+1 < l.TotalPages
}

// LibraryClient is the specialized client for the authenticated user's game
// library.
type LibraryClient interface {
	// Get returns the whole library.
	Get(context.Context, *LibraryListOptions) (Library, error)
	// GetPage returns one page of the library.
	GetPage(context.Context, *LibraryPageOptions) (LibraryPage, error)
}

type libraryClient struct {
	*restmachinery.BaseClient
}

func (l *libraryClient) Get(
	ctx context.Context,
	opts *LibraryListOptions,
) (Library, error) {
	if opts == nil {
		opts = &LibraryListOptions{}
	}
	library := Library{}
	return library, l.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        libraryPath,
			QueryParams: opts.queryParams(),
			SuccessCode: http.StatusOK,
			RespObj:     &library,
		},
	)
}

func (l *libraryClient) GetPage(
	ctx context.Context,
	opts *LibraryPageOptions,
) (LibraryPage, error) {
	page := LibraryPage{}
	if opts == nil {
		opts = &LibraryPageOptions{}
	}
	size := opts.Size
	if size == 0 {
		size = DefaultPageSize
	}
	if opts.Page < 0 || size < 0 {
		return page, errors.Errorf(
			"invalid pagination parameters: page %d, size %d",
			opts.Page,
			opts.Size,
		)
	}
	queryParams := opts.queryParams()
	queryParams["page"] = strconv.Itoa(opts.Page)
	queryParams["size"] = strconv.Itoa(size)
	return page, l.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        paginatedLibraryPath,
			QueryParams: queryParams,
			SuccessCode: http.StatusOK,
			RespObj:     &page,
		},
	)
}

func (l *LibraryListOptions) queryParams() map[string]string {
	queryParams := map[string]string{}
	if l.SortBy != "" {
		queryParams["sortBy"] = string(l.SortBy)
	}
	if l.Genre != "" {
		queryParams["filterByGenre"] = l.Genre
	}
	return queryParams
}
