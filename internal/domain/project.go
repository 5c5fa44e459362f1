package domain

// Project is a time-boxed hospital initiative. EndDate is not required to
// fall on or after StartDate.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
}
