package dto

import "reviewhub/internal/microservices/http-api/models"

// CreateGenreDTO for POST /api/v1/genres
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		ID:   g.ID,
		Name: g.Name,
		Slug: g.Slug,
	}
}

func GenresFromModels(list []models.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(list))
	for _, g := range list {
		out = append(out, GenreFromModel(g))
	}
	return out
}
