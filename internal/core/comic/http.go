// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/comicshelf/internal/platform/request"
	"github.com/taibuivan/comicshelf/internal/platform/respond"
	"github.com/taibuivan/comicshelf/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the comic catalogue.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comic [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
// It is mounted under /api/comics.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	router.Get("/getComics", handler.listComics)
	router.Get("/getComics/{id}", handler.getComic)
	router.Get("/fetchBook", handler.fetchComics)

	// ## Management
	router.Post("/createComic", handler.createComic)
	router.Put("/editComic/{id}", handler.updateComic)
	router.Delete("/deleteComic/{id}", handler.deleteComic)

	return router
}

// # Response Payloads

// comicResponse is the body of every single-record response.
type comicResponse struct {
	Message string `json:"message"`
	Comic   *Comic `json:"comic"`
}

// listResponse is the body of a paginated listing.
type listResponse struct {
	Message string `json:"message"`
	pagination.Meta
	Comics []*Comic `json:"comics"`
}

// fetchResponse is the body of an unpaginated listing.
type fetchResponse struct {
	Message string   `json:"message"`
	Comics  []*Comic `json:"comics"`
}

// # Discovery Endpoints

/*
GET /api/comics/getComics.

Description: Retrieves one page of listings. Filters are exact matches and
are ANDed; absent filters do not constrain the result.

Request:
  - authorName: string
  - yearOfPublication: int
  - price: number
  - condition: string (new, used)
  - sortBy: string (any record field, default bookName)
  - sortOrder: string (desc; anything else is ascending)
  - page: int (default 1)
  - limit: int (default 2)

Response:
  - 200: listResponse: Page plus totalCount, currentPage, totalPages
  - 400: Validation: Malformed filter, page or sort field

An unknown sortBy is rejected with 400; it is never ignored.
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	query, err := ParseListQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListComics(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, listResponse{
		Message: MsgListed,
		Meta:    page.Meta,
		Comics:  page.Comics,
	})
}

/*
GET /api/comics/fetchBook.

Description: Same filters and sort as getComics, without pagination.

Response:
  - 200: fetchResponse: Every matching listing
  - 400: Validation: Malformed filter or sort field
*/
func (handler *Handler) fetchComics(writer http.ResponseWriter, request *http.Request) {
	filter, sort, err := ParseFilter(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comics, err := handler.service.FetchComics(request.Context(), filter, sort)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fetchResponse{Message: MsgListed, Comics: comics})
}

/*
GET /api/comics/getComics/{id}.

Response:
  - 200: comicResponse: Success
  - 404: NotFound: Unknown or non-numeric id
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	id, err := comicID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.GetComic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comicResponse{Message: MsgRetrieved, Comic: comic})
}

// # Mutation Endpoints

/*
POST /api/comics/createComic.

Request (Body):
  - CreateInput: JSON object

Response:
  - 201: comicResponse: Stored record
  - 400: Validation: Invalid JSON, missing field or bad condition
  - 500: Internal: Store failure, including a duplicate id or bookName
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.CreateComic(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comicResponse{Message: MsgCreated, Comic: comic})
}

/*
PUT /api/comics/editComic/{id}.

Description: Partial update. Only the keys present in the body are changed.

Response:
  - 200: comicResponse: Record after the update
  - 400: Validation: Invalid JSON or bad condition
  - 404: NotFound: Unknown or non-numeric id
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	id, err := comicID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.UpdateComic(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comicResponse{Message: MsgUpdated, Comic: comic})
}

/*
DELETE /api/comics/deleteComic/{id}.

Response:
  - 200: comicResponse: The removed record
  - 404: NotFound: Unknown or non-numeric id
*/
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	id, err := comicID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.DeleteComic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comicResponse{Message: MsgDeleted, Comic: comic})
}

// # Helpers

// comicID reads the {id} path segment. A non-numeric id cannot name a record,
// so it is reported as not found.
func comicID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		return 0, ErrComicNotFound
	}
	return id, nil
}
