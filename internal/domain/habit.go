package domain

import "time"

// Habit is a user-owned recurring intention. Completion is tracked per
// calendar date through HabitEntry.
type Habit struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HabitEntry records completion of one habit on one calendar date. At most
// one entry exists per (habit, date); toggling flips the existing row.
type HabitEntry struct {
	ID        int64
	HabitID   int64
	EntryDate time.Time // date only, UTC midnight
	Completed bool
	CreatedAt time.Time
}
