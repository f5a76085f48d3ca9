package domain

import "time"

// Well-known goal categories. Anything else is treated as a custom category
// and stored as given.
const (
	GoalShortTerm = "short_term"
	GoalLongTerm  = "long_term"
	GoalCustom    = "custom"
)

// Goal is a user-scoped target. Goals are strictly owned; there is no sharing.
type Goal struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Category    string
	TargetDate  *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
