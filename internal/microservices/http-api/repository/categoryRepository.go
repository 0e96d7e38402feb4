package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context, search string) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

var _ CategoryRepository = (*CategoryRepo)(nil)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) List(ctx context.Context, search string) ([]models.Category, error) {
	var list []models.Category
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(search)+"%")
	}
	if err := q.Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", translate(err))
	}
	return nil
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteBySlug removes the category. Titles in it keep existing with a
// null category via ON DELETE SET NULL.
func (r *CategoryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return deleted(r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{}))
}
