// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comicshelf/internal/core/comic"
)

func newRouter(repo *memoryRepository) http.Handler {
	router := chi.NewRouter()
	router.Mount("/api/comics", comic.NewHandler(newService(repo)).Routes())
	return router
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload), recorder.Body.String())
	return recorder, payload
}

/*
TestHandler_CreateComic covers the create endpoint's status codes and body shape.
*/
func TestHandler_CreateComic(t *testing.T) {
	const valid = `{"id":7,"bookName":"Maus","authorName":"Art Spiegelman","yearOfPublication":1991,"price":0,"numberOfPages":296,"condition":"used","genre":"Memoir"}`

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"Created", valid, http.StatusCreated, comic.MsgCreated},
		{"Missing genre", `{"id":7,"bookName":"Maus","authorName":"A","yearOfPublication":1991,"price":1,"numberOfPages":1,"condition":"new"}`, http.StatusBadRequest, comic.MsgMissingField},
		{"Bad condition", strings.Replace(valid, `"used"`, `"mint"`, 1), http.StatusBadRequest, comic.MsgBadCondition},
		{"Empty book name", strings.Replace(valid, `"Maus"`, `""`, 1), http.StatusBadRequest, comic.MsgMissingField},
		{"Malformed JSON", `{"id":`, http.StatusBadRequest, "Invalid JSON payload"},
		{"Duplicate book name", strings.Replace(valid, `"Maus"`, `"A-Book"`, 1), http.StatusInternalServerError, comic.MsgCreateFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(newMemoryRepository(catalogue()...))

			recorder, payload := serve(t, router, http.MethodPost, "/api/comics/createComic", tc.body)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Equal(t, tc.wantMessage, payload["message"])
		})
	}

	t.Run("Defaults in the stored record", func(t *testing.T) {
		router := newRouter(newMemoryRepository())

		_, payload := serve(t, router, http.MethodPost, "/api/comics/createComic", valid)

		record, ok := payload["comic"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(0), record["discount"])
		assert.Equal(t, "", record["description"])
		assert.Equal(t, float64(0), record["price"])
		assert.Equal(t, "used", record["condition"])
	})
}

/*
TestHandler_GetUpdateDelete covers the id-addressed endpoints.
*/
func TestHandler_GetUpdateDelete(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"Get existing", http.MethodGet, "/api/comics/getComics/1", "", http.StatusOK, comic.MsgRetrieved},
		{"Get missing", http.MethodGet, "/api/comics/getComics/999", "", http.StatusNotFound, comic.MsgNotFound},
		{"Get non-numeric id", http.MethodGet, "/api/comics/getComics/abc", "", http.StatusNotFound, comic.MsgNotFound},
		{"Update existing", http.MethodPut, "/api/comics/editComic/1", `{"price":0}`, http.StatusOK, comic.MsgUpdated},
		{"Update missing", http.MethodPut, "/api/comics/editComic/999", `{"price":1}`, http.StatusNotFound, comic.MsgNotFound},
		{"Update bad condition", http.MethodPut, "/api/comics/editComic/1", `{"condition":"poor"}`, http.StatusBadRequest, comic.MsgBadCondition},
		{"Delete existing", http.MethodDelete, "/api/comics/deleteComic/1", "", http.StatusOK, comic.MsgDeleted},
		{"Delete missing", http.MethodDelete, "/api/comics/deleteComic/999", "", http.StatusNotFound, comic.MsgNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(newMemoryRepository(catalogue()...))

			recorder, payload := serve(t, router, tc.method, tc.target, tc.body)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Equal(t, tc.wantMessage, payload["message"])
			if tc.wantStatus == http.StatusOK {
				record, ok := payload["comic"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(1), record["id"])
			} else {
				assert.NotEmpty(t, payload["code"])
			}
		})
	}
}

/*
TestHandler_ListComics covers the paginated listing and its metadata keys.
*/
func TestHandler_ListComics(t *testing.T) {
	t.Run("Defaults to first page of two", func(t *testing.T) {
		router := newRouter(newMemoryRepository(catalogue()...))

		recorder, payload := serve(t, router, http.MethodGet, "/api/comics/getComics", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, comic.MsgListed, payload["message"])
		assert.Equal(t, float64(5), payload["totalCount"])
		assert.Equal(t, float64(1), payload["currentPage"])
		assert.Equal(t, float64(3), payload["totalPages"])
		assert.Len(t, payload["comics"], 2)
	})

	t.Run("Filter, sort and page together", func(t *testing.T) {
		router := newRouter(newMemoryRepository(catalogue()...))

		recorder, payload := serve(t, router, http.MethodGet,
			"/api/comics/getComics?authorName=Moore&sortBy=price&sortOrder=desc&page=2&limit=2", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, float64(3), payload["totalCount"])
		assert.Equal(t, float64(2), payload["totalPages"])

		comics, ok := payload["comics"].([]any)
		require.True(t, ok)
		require.Len(t, comics, 1)
		assert.Equal(t, "E-Book", comics[0].(map[string]any)["bookName"])
	})

	t.Run("Empty result serialises as an array", func(t *testing.T) {
		router := newRouter(newMemoryRepository())

		_, payload := serve(t, router, http.MethodGet, "/api/comics/getComics", "")

		assert.Equal(t, []any{}, payload["comics"])
		assert.Equal(t, float64(0), payload["totalPages"])
	})

	rejects := []struct {
		name   string
		target string
	}{
		{"Zero page", "/api/comics/getComics?page=0"},
		{"Negative limit", "/api/comics/getComics?limit=-1"},
		{"Non-numeric limit", "/api/comics/getComics?limit=ten"},
		{"Offset out of range", "/api/comics/getComics?page=9223372036854775807&limit=2"},
		{"Non-numeric year", "/api/comics/getComics?yearOfPublication=nineteen"},
		{"Non-numeric price", "/api/comics/getComics?price=cheap"},
		{"Unknown sort field", "/api/comics/getComics?sortBy=publisher"},
	}

	for _, tc := range rejects {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(newMemoryRepository(catalogue()...))

			recorder, payload := serve(t, router, http.MethodGet, tc.target, "")

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, comic.MsgBadQuery, payload["message"])
		})
	}
}

/*
TestHandler_FetchComics verifies the unpaginated listing carries no page metadata.
*/
func TestHandler_FetchComics(t *testing.T) {
	router := newRouter(newMemoryRepository(catalogue()...))

	recorder, payload := serve(t, router, http.MethodGet, "/api/comics/fetchBook?condition=new", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, comic.MsgListed, payload["message"])
	assert.Len(t, payload["comics"], 3)
	assert.NotContains(t, payload, "totalCount")
}

/*
TestHandler_StoreFailure verifies that store errors surface as the fixed 500 message.
*/
func TestHandler_StoreFailure(t *testing.T) {
	repo := newMemoryRepository()
	repo.failWith = errStoreDown
	router := newRouter(repo)

	recorder, payload := serve(t, router, http.MethodGet, "/api/comics/getComics", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, comic.MsgListFailed, payload["message"])
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}
