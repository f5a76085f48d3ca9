package dto

import "time"

// CreateGoalRequest is the JSON body for POST /goals. Category accepts
// short_term, long_term, or any custom label; empty defaults to "custom".
type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TargetDate  Date   `json:"target_date"`
}

// UpdateGoalRequest is a partial update; nil fields are left unchanged.
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	TargetDate  *Date   `json:"target_date"`
}

// SetCompletedRequest is the JSON body for POST /goals/{id}/complete.
type SetCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type GoalResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	TargetDate  *string   `json:"target_date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GoalListResponse struct {
	Items []GoalResponse `json:"items"`
}
