package domain

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Priorities lists the conventional task priorities in display order.
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh}
}

// Statuses lists the conventional task statuses in display order.
func Statuses() []string {
	return []string{StatusPending, StatusInProgress, StatusCompleted}
}
