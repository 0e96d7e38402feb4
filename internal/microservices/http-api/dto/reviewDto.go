package dto

import (
	"time"

	"reviewhub/internal/microservices/http-api/models"
)

type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required,score"`
}

type UpdateReviewDTO struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,score"`
}

// ReviewResponse shows the author by username.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

func FromModelsToReviewResponses(list []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for i := range list {
		out = append(out, *FromModelToReviewResponse(&list[i]))
	}
	return out
}
