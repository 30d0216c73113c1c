package dto

import (
	"time"

	"fintrack/internal/models"
)

type UserResponse struct {
	StoreID   string `json:"_id"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CreateUserRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email" example:"user@example.com"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		StoreID:  u.StoreID.Hex(),
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
