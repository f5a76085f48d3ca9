package dto

import "time"

// CreateTaskRequest is the JSON body for POST /tasks. Lengths and enum values
// are validated in the service so failures carry specific reasons.
type CreateTaskRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	Priority         string `json:"priority"` // low|medium|high, anything else becomes medium
	DueDate          Date   `json:"due_date"`
	RecurringType    string `json:"recurring_type"` // daily|weekly|monthly
	RecurringTime    string `json:"recurring_time"` // HH:MM
	RecurringEndDate Date   `json:"recurring_end_date"`
}

// UpdateTaskRequest is a partial update; nil fields are left unchanged. An
// empty recurring_type clears the recurrence rule.
type UpdateTaskRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Priority         *string `json:"priority"`
	DueDate          *Date   `json:"due_date"`
	RecurringType    *string `json:"recurring_type"`
	RecurringTime    *string `json:"recurring_time"`
	RecurringEndDate *Date   `json:"recurring_end_date"`
}

// SetStatusRequest is the JSON body for POST /tasks/{id}/status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetSharedRequest is the JSON body for POST /tasks/{id}/share.
type SetSharedRequest struct {
	IsShared *bool `json:"is_shared" binding:"required"`
}

type TaskResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	DueDate          *string   `json:"due_date"`
	RecurringType    *string   `json:"recurring_type"`
	RecurringTime    *string   `json:"recurring_time"`
	RecurringEndDate *string   `json:"recurring_end_date"`
	Owner            *int64    `json:"owner"`
	IsShared         bool      `json:"is_shared"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
}

type TaskCountsResponse struct {
	Total      int64 `json:"total"`
	Complete   int64 `json:"complete"`
	Incomplete int64 `json:"incomplete"`
}

// CalendarResponse maps "2006-01-02" date keys to the tasks present that day.
type CalendarResponse struct {
	Days map[string][]TaskResponse `json:"days"`
}
