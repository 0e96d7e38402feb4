package client

// http_client.go talks to the reviewhub HTTP API on behalf of the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"reviewhub/internal/microservices/http-api/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.Status, strings.Join(parts, "; "))
}

// TitleQuery holds the optional title list filters.
type TitleQuery struct {
	Category string
	Genre    string
	Name     string
	Year     int
}

func (q TitleQuery) encode() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Year != 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewHTTPClient expects the API root, e.g. http://localhost:8080/api/v1
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
		var e dto.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			apiErr.Message = e.Error
			apiErr.Fields = e.Fields
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	var out dto.SignupResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Token(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/token", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListTitles(ctx context.Context, q TitleQuery) ([]dto.TitleResponse, error) {
	var out []dto.TitleResponse
	if err := c.do(ctx, http.MethodGet, "/titles"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	var out dto.TitleResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/categories"+searchQuery(search), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListGenres(ctx context.Context, search string) ([]dto.GenreResponse, error) {
	var out []dto.GenreResponse
	if err := c.do(ctx, http.MethodGet, "/genres"+searchQuery(search), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func reviewsPath(titleID int64) string {
	return fmt.Sprintf("/titles/%d/reviews", titleID)
}

func (c *HTTPClient) ListReviews(ctx context.Context, titleID int64) ([]dto.ReviewResponse, error) {
	var out []dto.ReviewResponse
	if err := c.do(ctx, http.MethodGet, reviewsPath(titleID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	var out dto.ReviewResponse
	if err := c.do(ctx, http.MethodPost, reviewsPath(titleID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateReview(ctx context.Context, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	var out dto.ReviewResponse
	path := fmt.Sprintf("%s/%d", reviewsPath(titleID), reviewID)
	if err := c.do(ctx, http.MethodPatch, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", reviewsPath(titleID), reviewID), nil, nil)
}

func commentsPath(titleID, reviewID int64) string {
	return fmt.Sprintf("/titles/%d/reviews/%d/comments", titleID, reviewID)
}

func (c *HTTPClient) ListComments(ctx context.Context, titleID, reviewID int64) ([]dto.CommentResponse, error) {
	var out []dto.CommentResponse
	if err := c.do(ctx, http.MethodGet, commentsPath(titleID, reviewID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	var out dto.CommentResponse
	if err := c.do(ctx, http.MethodPost, commentsPath(titleID, reviewID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, titleID, reviewID, commentID int64) error {
	path := fmt.Sprintf("%s/%d", commentsPath(titleID, reviewID), commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func searchQuery(search string) string {
	if search == "" {
		return ""
	}
	return "?search=" + url.QueryEscape(search)
}
