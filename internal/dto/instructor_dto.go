package dto

type CreateInstructorRequest struct {
	UserID          string   `json:"userId"`
	Registration    string   `json:"registration"`
	CPF             string   `json:"cpf"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Specializations []string `json:"specializations"`
	Status          string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateInstructorRequest leaves Specializations untouched when nil; an empty
// list is rejected.
type UpdateInstructorRequest struct {
	UserID          string   `json:"userId" validate:"required"`
	Name            *string  `json:"name"`
	Phone           *string  `json:"phone"`
	Status          *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	Specializations []string `json:"specializations"`
}
