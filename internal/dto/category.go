package dto

import "fintrack/internal/models"

type CategoryResponse struct {
	StoreID string `json:"_id"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
}

type CreateCategoryRequest struct {
	ID   string `json:"id"`
	Type string `json:"type" example:"Expense"`
	Name string `json:"name" example:"Groceries"`
}

type UpdateCategoryRequest struct {
	Type *string `json:"type,omitempty"`
	Name *string `json:"name,omitempty"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		StoreID: c.StoreID.Hex(),
		ID:      c.ID,
		Type:    string(c.Type),
		Name:    c.Name,
	}
}

func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}
