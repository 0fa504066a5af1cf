package dto

// Dates are accepted as RFC 3339 timestamps or plain 2006-01-02 dates.
type CreateClassRequest struct {
	UserID     string   `json:"userId"`
	Course     string   `json:"course"`
	Modality   string   `json:"modality"`
	Students   []string `json:"students"`
	Instructor *string  `json:"instructor"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Status     string   `json:"status"`
}

// UpdateClassRequest: an empty Instructor string unassigns the instructor,
// nil leaves it as is.
type UpdateClassRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	Course     *string  `json:"course"`
	Modality   *string  `json:"modality"`
	Students   []string `json:"students"`
	Instructor *string  `json:"instructor"`
	StartDate  *string  `json:"startDate"`
	EndDate    *string  `json:"endDate"`
	Status     *string  `json:"status"`
}
