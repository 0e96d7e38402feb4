package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/validators"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, f repository.TitleFilter) ([]dto.TitleResponse, error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	ratings    *ratings
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	cache RatingCache,
	logger *slog.Logger,
) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		ratings:    newRatings(titles, cache, logger),
	}
}

func (s *titleService) List(ctx context.Context, f repository.TitleFilter) ([]dto.TitleResponse, error) {
	list, err := s.titles.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	rated, err := s.ratings.many(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TitleResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToTitleResponse(&list[i], rated[list[i].ID]))
	}
	return out, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("title", err)
	}
	return s.project(ctx, t)
}

// Create resolves every slug before writing; an unknown one aborts the
// request with nothing persisted.
func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fieldErr("name", ErrBlankText)
	}
	if req.Year == nil {
		return nil, fieldErr("year", ErrBlankText)
	}
	if err := validators.ValidateYear(*req.Year); err != nil {
		return nil, fieldErr("year", err)
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	t := &models.Title{
		Name:        name,
		Year:        *req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}
	if err := s.titles.Create(ctx, t, genres); err != nil {
		return nil, err
	}
	return s.reload(ctx, t.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("title", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fieldErr("name", ErrBlankText)
		}
		t.Name = name
	}
	if req.Year != nil {
		if err := validators.ValidateYear(*req.Year); err != nil {
			return nil, fieldErr("year", err)
		}
		t.Year = *req.Year
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		t.CategoryID = categoryID
	}

	var genres []models.Genre
	if req.Genre != nil {
		genres, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if genres == nil {
			// non-nil empty slice tells the store to clear the links
			genres = []models.Genre{}
		}
	}

	// the preloaded relations must not be written back
	t.Category = nil
	t.Genres = nil
	if err := s.titles.Update(ctx, t, genres); err != nil {
		return nil, notFound("title", err)
	}
	return s.reload(ctx, t.ID)
}

// Delete removes the title with its reviews, comments and genre links.
func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titles.Delete(ctx, id); err != nil {
		return notFound("title", err)
	}
	s.ratings.invalidate(ctx, id)
	return nil
}

func (s *titleService) reload(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("title", err)
	}
	return s.project(ctx, t)
}

func (s *titleService) project(ctx context.Context, t *models.Title) (*dto.TitleResponse, error) {
	rating, err := s.ratings.one(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(t, rating), nil
}

// resolveCategory maps a category slug to its id. nil or "" means none.
func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*int64, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}
	c, err := s.categories.FindBySlug(ctx, *slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldErr("category", ErrUnknownReference)
		}
		return nil, err
	}
	return &c.ID, nil
}

// resolveGenres maps genre slugs to genres, failing if any slug is unknown.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}

	found, err := s.genres.FindBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, fieldErr("genre", ErrUnknownReference)
	}
	return found, nil
}
