package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTitles_SendsFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/titles", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]dto.TitleResponse{{ID: 1, Name: "Stalker", Year: 1979}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/api/v1/")
	titles, err := c.ListTitles(context.Background(), TitleQuery{Genre: "drama", Year: 1979})
	require.NoError(t, err)

	assert.Equal(t, "genre=drama&year=1979", gotQuery)
	require.Len(t, titles, 1)
	assert.Equal(t, "Stalker", titles[0].Name)
}

func TestCreateReview_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/titles/3/reviews", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req dto.CreateReviewDTO
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.ReviewResponse{ID: 9, Text: req.Text, Score: *req.Score, Author: "alice"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("secret")
	score := 8
	review, err := c.CreateReview(context.Background(), 3, dto.CreateReviewDTO{Text: "good", Score: &score})
	require.NoError(t, err)
	assert.Equal(t, int64(9), review.ID)
	assert.Equal(t, 8, review.Score)
}

func TestDo_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error:  "validation failed",
			Fields: map[string]string{"score": "score must be between 1 and 10"},
		})
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).CreateReview(context.Background(), 1, dto.CreateReviewDTO{Text: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "score: score must be between 1 and 10")
}

func TestDeleteReview_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/titles/1/reviews/2", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, NewHTTPClient(srv.URL).DeleteReview(context.Background(), 1, 2))
}

func TestAPIError_WithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).ListGenres(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "502 Bad Gateway", apiErr.Message)
}
