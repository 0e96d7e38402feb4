package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/validators"
)

type source struct {
	file   string
	table  string
	decode func([]record) (rows any, n int, err error)
}

// sources lists the fixture files in load order; later files reference
// rows from earlier ones.
var sources = []source{
	{file: "users.csv", table: "users", decode: decodeAll(decodeUser)},
	{file: "category.csv", table: "categories", decode: decodeAll(decodeCategory)},
	{file: "genre.csv", table: "genres", decode: decodeAll(decodeGenre)},
	{file: "titles.csv", table: "titles", decode: decodeAll(decodeTitle)},
	{file: "review.csv", table: "reviews", decode: decodeAll(decodeReview)},
	{file: "comments.csv", table: "comments", decode: decodeAll(decodeComment)},
	{file: "genre_title.csv", table: "genre_titles", decode: decodeAll(decodeGenreTitle)},
}

type record struct {
	line   int
	values map[string]string
}

func (r record) str(col string) string {
	return r.values[col]
}

func (r record) optStr(col string) *string {
	v, ok := r.values[col]
	if !ok || v == "" {
		return nil
	}
	return &v
}

func (r record) intField(col string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(r.values[col]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, col, err)
	}
	return v, nil
}

func (r record) optIntField(col string) (*int64, error) {
	if strings.TrimSpace(r.values[col]) == "" {
		return nil, nil
	}
	v, err := r.intField(col)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r record) timeField(col string) (time.Time, error) {
	raw := strings.TrimSpace(r.values[col])
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("line %d: column %s: %w", r.line, col, err)
	}
	return t, nil
}

// decodeAll adapts a per-row decoder to a whole file, returning a pointer
// to the slice so the store can insert it in batches.
func decodeAll[T any](fn func(record) (T, error)) func([]record) (any, int, error) {
	return func(records []record) (any, int, error) {
		out := make([]T, 0, len(records))
		for _, rec := range records {
			v, err := fn(rec)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, v)
		}
		return &out, len(out), nil
	}
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeUser(r record) (models.User, error) {
	id, err := r.intField("id")
	if err != nil {
		return models.User{}, err
	}
	role := r.str("role")
	if role == "" {
		role = validators.RoleUser
	}
	return models.User{
		ID:        id,
		Username:  r.str("username"),
		Email:     r.str("email"),
		FirstName: r.str("first_name"),
		LastName:  r.str("last_name"),
		Bio:       r.optStr("bio"),
		Role:      role,
	}, nil
}

func decodeCategory(r record) (models.Category, error) {
	id, err := r.intField("id")
	if err != nil {
		return models.Category{}, err
	}
	return models.Category{ID: id, Name: r.str("name"), Slug: r.str("slug")}, nil
}

func decodeGenre(r record) (models.Genre, error) {
	id, err := r.intField("id")
	if err != nil {
		return models.Genre{}, err
	}
	return models.Genre{ID: id, Name: r.str("name"), Slug: r.str("slug")}, nil
}

func decodeTitle(r record) (models.Title, error) {
	id, errID := r.intField("id")
	year, errYear := r.intField("year")
	category, errCat := r.optIntField("category_id")
	if err := firstErr(errID, errYear, errCat); err != nil {
		return models.Title{}, err
	}
	return models.Title{
		ID:          id,
		Name:        r.str("name"),
		Year:        int(year),
		Description: r.optStr("description"),
		CategoryID:  category,
	}, nil
}

func decodeReview(r record) (models.Review, error) {
	id, errID := r.intField("id")
	title, errTitle := r.intField("title_id")
	author, errAuthor := r.intField("author_id")
	score, errScore := r.intField("score")
	pub, errPub := r.timeField("pub_date")
	if err := firstErr(errID, errTitle, errAuthor, errScore, errPub); err != nil {
		return models.Review{}, err
	}
	return models.Review{
		ID:       id,
		TitleID:  title,
		AuthorID: author,
		Text:     r.str("text"),
		Score:    int(score),
		PubDate:  pub,
	}, nil
}

func decodeComment(r record) (models.Comment, error) {
	id, errID := r.intField("id")
	review, errReview := r.intField("review_id")
	author, errAuthor := r.intField("author_id")
	pub, errPub := r.timeField("pub_date")
	if err := firstErr(errID, errReview, errAuthor, errPub); err != nil {
		return models.Comment{}, err
	}
	return models.Comment{
		ID:       id,
		ReviewID: review,
		AuthorID: author,
		Text:     r.str("text"),
		PubDate:  pub,
	}, nil
}

func decodeGenreTitle(r record) (models.GenreTitle, error) {
	id, errID := r.intField("id")
	genre, errGenre := r.intField("genre_id")
	title, errTitle := r.intField("title_id")
	if err := firstErr(errID, errGenre, errTitle); err != nil {
		return models.GenreTitle{}, err
	}
	return models.GenreTitle{ID: id, GenreID: genre, TitleID: title}, nil
}
