package dto

import "time"

// CreateHabitRequest is the JSON body for POST /habits.
type CreateHabitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ToggleEntryRequest is the JSON body for POST /habits/{id}/entries/toggle.
// An absent date means today.
type ToggleEntryRequest struct {
	Date Date `json:"date"`
}

type HabitResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Done        bool      `json:"done"` // completion on the requested date
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HabitListResponse struct {
	Items []HabitResponse `json:"items"`
}

type HabitEntryResponse struct {
	ID        int64  `json:"id"`
	HabitID   int64  `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type HabitEntryListResponse struct {
	Items []HabitEntryResponse `json:"items"`
}
