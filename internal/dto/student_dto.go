package dto

// CreateStudentRequest registers a student linked to UserID. Registration is
// generated when left empty.
type CreateStudentRequest struct {
	UserID       string `json:"userId"`
	Registration string `json:"registration"`
	CPF          string `json:"cpf"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateStudentRequest struct {
	UserID string  `json:"userId" validate:"required"`
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}
