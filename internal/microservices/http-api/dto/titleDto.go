package dto

import "reviewhub/internal/microservices/http-api/models"

// CreateTitleDTO used for POST /api/v1/titles. Genre and category are
// referenced by slug and may be omitted.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        *int     `json:"year" binding:"required,notfutureyear"`
	Description *string  `json:"description" binding:"omitempty,max=225"`
	Genre       []string `json:"genre" binding:"omitempty,dive,required,max=50"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
}

// UpdateTitleDTO used for PATCH /api/v1/titles/:title_id (partial updates).
// A nil Genre keeps the links; an empty list clears them. An empty
// Category string clears the category.
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=200"`
	Year        *int      `json:"year" binding:"omitempty,notfutureyear"`
	Description *string   `json:"description" binding:"omitempty,max=225"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,required,max=50"`
	Category    *string   `json:"category" binding:"omitempty,max=50"`
}

// TitleResponse is the read shape, also returned by writes.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Rating      *int              `json:"rating"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// FromModelToTitleResponse projects a title with its preloaded relations.
func FromModelToTitleResponse(t *models.Title, rating *int) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Rating:      rating,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       GenresFromModels(t.Genres),
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}
