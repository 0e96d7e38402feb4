package repository

import (
	"context"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64) ([]models.Review, error)
	ExistsForAuthor(ctx context.Context, authorID, titleID int64) (bool, error)
	TitleIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. A second review by the same author on the same
// title fails on the unique_review index.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error)
}

// Update writes text and score only; pub_date and the owner never change.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).
		Model(review).
		Omit(clause.Associations).
		Select("text", "score").
		Updates(review).Error
}

// Delete removes the review and, via cascade, its comments.
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Review{}, id))
}

// GetByID finds a review scoped to its title.
func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByTitle returns the title's reviews, newest first.
func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ExistsForAuthor(ctx context.Context, authorID, titleID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		Count(&count).Error
	return count > 0, err
}

// TitleIDsByAuthor lists the titles the user has reviewed.
func (r *reviewRepository) TitleIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("author_id = ?", authorID).
		Distinct().
		Pluck("title_id", &ids).Error
	return ids, err
}
