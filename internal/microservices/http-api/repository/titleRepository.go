package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitleFilter narrows the title list. Zero values mean no filter.
type TitleFilter struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // substring, case-insensitive
	Year     *int
}

type TitleRepository interface {
	List(ctx context.Context, f TitleFilter) ([]models.Title, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title, genres []models.Genre) error
	Update(ctx context.Context, t *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	Ratings(ctx context.Context, ids []int64) (map[int64]int, error)
}

var _ TitleRepository = (*TitleRepo)(nil)

type TitleRepo struct {
	db *gorm.DB
}

func NewTitleRepo(db *gorm.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.name asc")
	})
}

func (r *TitleRepo) List(ctx context.Context, f TitleFilter) ([]models.Title, error) {
	var list []models.Title
	q := withRelations(r.db.WithContext(ctx).Model(&models.Title{}))

	if f.Category != "" {
		q = q.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", f.Category)
	}
	if f.Genre != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM genre_titles gt JOIN genres g ON g.id = gt.genre_id
			WHERE gt.title_id = titles.id AND g.slug = ?)`, f.Genre)
	}
	if f.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.Year != nil {
		q = q.Where("titles.year = ?", *f.Year)
	}

	if err := q.Order("titles.name asc, titles.id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get titles: %w", err)
	}
	return list, nil
}

func (r *TitleRepo) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := withRelations(r.db.WithContext(ctx)).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the title and its genre links in one transaction.
func (r *TitleRepo) Create(ctx context.Context, t *models.Title, genres []models.Genre) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create title: %w", err)
	}
	if err := replaceGenres(tx, t.ID, genres); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// Update writes the scalar columns and, when genres is non-nil, replaces the
// genre links. Both happen in one transaction.
func (r *TitleRepo) Update(ctx context.Context, t *models.Title, genres []models.Genre) error {
	tx := r.db.WithContext(ctx).Begin()
	result := tx.Model(t).
		Omit(clause.Associations).
		Select("name", "year", "description", "category_id").
		Updates(t)
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("update title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return gorm.ErrRecordNotFound
	}
	if genres != nil {
		if err := replaceGenres(tx, t.ID, genres); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// Delete removes the title; reviews, their comments and genre links cascade.
func (r *TitleRepo) Delete(ctx context.Context, id int64) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Title{}, id))
}

// Ratings computes FLOOR(AVG(score)) per title. Titles without reviews are
// absent from the map.
func (r *TitleRepo) Ratings(ctx context.Context, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		TitleID int64
		Rating  int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, FLOOR(AVG(score))::int AS rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("compute ratings: %w", err)
	}
	for _, row := range rows {
		out[row.TitleID] = row.Rating
	}
	return out, nil
}

func replaceGenres(tx *gorm.DB, titleID int64, genres []models.Genre) error {
	if err := tx.Where("title_id = ?", titleID).Delete(&models.GenreTitle{}).Error; err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}
	if len(genres) == 0 {
		return nil
	}

	seen := make(map[int64]bool, len(genres))
	links := make([]models.GenreTitle, 0, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		links = append(links, models.GenreTitle{GenreID: g.ID, TitleID: titleID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}
