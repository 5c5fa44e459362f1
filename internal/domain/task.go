package domain

// TaskItem is a unit of work that may be assigned to one employee.
//
// Priority and Status are open strings; the Priority* and Status* constants
// are the conventional values but nothing rejects others.
type TaskItem struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	Priority           string `json:"priority"`
	Status             string `json:"status"`
	DueDate            Date   `json:"dueDate"`
	AssignedEmployeeID *int64 `json:"assignedEmployeeId,omitempty"`

	// AssignedEmployee is only populated when the task was loaded with the
	// employee join and the assignment is non-null.
	AssignedEmployee *Employee `json:"assignedEmployee,omitempty"`
}

// IsAssigned reports whether the task references an employee.
func (t *TaskItem) IsAssigned() bool {
	return t.AssignedEmployeeID != nil
}
