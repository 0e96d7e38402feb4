package service

import (
	"context"
	"strings"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(r repository.CategoryRepository) CategoryService {
	return &categoryService{repo: r}
}

func (s *categoryService) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return dto.CategoriesFromModels(list), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fieldErr("name", ErrBlankText)
	}
	c := &models.Category{Name: name, Slug: req.Slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, uniqueField(err, "slug")
	}
	resp := dto.CategoryFromModel(*c)
	return &resp, nil
}

// Delete removes the category; its titles stay with no category.
func (s *categoryService) Delete(ctx context.Context, slug string) error {
	return notFound("category", s.repo.DeleteBySlug(ctx, slug))
}
