package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogue-backend/internal/corpus/corpustest"
	"dialogue-backend/internal/corpus/stats"
	"dialogue-backend/internal/domains/movie/service"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := corpustest.NewStore(t)
	h := NewMovieHandler(service.NewMovieService(store, stats.New(store)))

	router := gin.New()
	router.GET("/api/v1/movies", h.ListMovies)
	router.GET("/api/v1/movies/:id", h.GetMovie)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListMoviesEndpoint(t *testing.T) {
	router := testRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/movies")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 3)

	// Default sort is by title.
	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Quiet Harbor", first["movie_title"])
}

func TestListMoviesEndpointBadParams(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown sort key", "/api/v1/movies?sort=director"},
		{"non-numeric limit", "/api/v1/movies?limit=ten"},
		{"negative offset", "/api/v1/movies?offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doRequest(t, router, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])

			errObj, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "BAD_REQUEST", errObj["code"])
		})
	}
}

func TestGetMovieEndpoint(t *testing.T) {
	router := testRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/movies/1")
	assert.Equal(t, http.StatusOK, w.Code)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The Big Heist", data["title"])
	topChars, ok := data["top_characters"].([]any)
	require.True(t, ok)
	assert.Len(t, topChars, 3)
}

func TestGetMovieEndpointErrors(t *testing.T) {
	router := testRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/movies/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])

	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/movies/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
