package dto

import "reviewhub/internal/microservices/http-api/models"

// CreateUserRequest is the admin create payload.
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,max=150,username"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	FirstName string  `json:"first_name" binding:"max=150"`
	LastName  string  `json:"last_name" binding:"max=150"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role" binding:"omitempty,role"`
}

// UpdateUserRequest is the admin PATCH payload; nil fields stay unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,role"`
}

// UpdateProfileRequest is the self-edit payload. It has no role field, so a
// role sent by the client is dropped during binding.
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

// AsUserUpdate widens a profile edit to the admin shape with Role left nil.
func (r UpdateProfileRequest) AsUserUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

type UserResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role"`
}

func FromModelToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

func FromModelsToUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *FromModelToUserResponse(&users[i]))
	}
	return out
}
