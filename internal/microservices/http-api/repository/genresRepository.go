package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	List(ctx context.Context, search string) ([]models.Genre, error)
	Create(ctx context.Context, g *models.Genre) error
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

var _ GenreRepository = (*GenreRepo)(nil)

type GenreRepo struct {
	db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

func (r *GenreRepo) List(ctx context.Context, search string) ([]models.Genre, error) {
	var list []models.Genre
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(search)+"%")
	}
	if err := q.Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *GenreRepo) Create(ctx context.Context, g *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", translate(err))
	}
	return nil
}

// FindBySlugs returns the genres matching slugs. Unknown slugs are simply
// absent from the result; callers compare lengths.
func (r *GenreRepo) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres by slug: %w", err)
	}
	return list, nil
}

// DeleteBySlug removes the genre and, via cascade, its title links.
func (r *GenreRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return deleted(r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Genre{}))
}
