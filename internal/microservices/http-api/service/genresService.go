package service

import (
	"context"
	"strings"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
)

type GenreService interface {
	List(ctx context.Context, search string) ([]dto.GenreResponse, error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(r repository.GenreRepository) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) List(ctx context.Context, search string) ([]dto.GenreResponse, error) {
	list, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return dto.GenresFromModels(list), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fieldErr("name", ErrBlankText)
	}
	g := &models.Genre{Name: name, Slug: req.Slug}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, uniqueField(err, "slug")
	}
	resp := dto.GenreFromModel(*g)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	return notFound("genre", s.repo.DeleteBySlug(ctx, slug))
}
