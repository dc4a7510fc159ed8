package tasks

import "time"

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task es trabajo operativo del refugio. AnimalID es opcional.
type Task struct {
	ID          string
	AnimalID    string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	AssigneeID  string
	DueDate     *time.Time
	CreatedBy   string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Filter vacío = todas las tareas no borradas.
type Filter struct {
	AnimalID   string
	Status     Status
	AssigneeID string
}
