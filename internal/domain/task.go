package domain

import "time"

// Status of a task. Only two values; there is no in-progress state.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

func (s Status) Valid() bool {
	return s == StatusIncomplete || s == StatusComplete
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NormalizePriority maps any unrecognized value (including empty) to medium.
// Priority is the one field that is coerced instead of rejected.
func NormalizePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// RecurrenceType of a task's recurrence rule.
type RecurrenceType string

const (
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
)

func (r RecurrenceType) Valid() bool {
	return r == RecurDaily || r == RecurWeekly || r == RecurMonthly
}

// Task is the central entity. Recurrence and due date are independent axes:
// a task may have both, either, or neither.
type Task struct {
	ID               int64
	Title            string
	Description      string
	Status           Status
	Priority         Priority
	DueDate          *time.Time
	RecurringType    *RecurrenceType
	RecurringTime    *string // time of day, "HH:MM"
	RecurringEndDate *time.Time
	OwnerID          *int64 // nil for legacy rows created before ownership
	IsShared         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recurring reports whether the task carries a recurrence rule.
func (t Task) Recurring() bool { return t.RecurringType != nil }

// VisibleTo reports whether the actor may read the task. A nil actor is an
// unscoped (administrative) caller and sees everything. Ownerless rows are
// visible to everyone.
func (t Task) VisibleTo(actorID *int64) bool {
	if actorID == nil || t.OwnerID == nil {
		return true
	}
	return *t.OwnerID == *actorID || t.IsShared
}

// EditableBy reports whether the actor may change the task's content or
// status. Any visibility holder may edit: collaborators on a shared task can
// complete or rewrite it.
func (t Task) EditableBy(actorID *int64) bool { return t.VisibleTo(actorID) }

// SharableBy reports whether the actor may toggle the shared flag. Strictly
// the owner; collaborators may edit a shared task but not revoke or re-grant
// its shared status.
func (t Task) SharableBy(actorID *int64) bool {
	return t.OwnerID != nil && actorID != nil && *t.OwnerID == *actorID
}
