package dto

import (
	"time"

	"classmanager/internal/entity"

	"gorm.io/datatypes"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// UpdateUserRequest carries only the mutable user fields. Nil means unchanged.
type UpdateUserRequest struct {
	UserID   string  `json:"userId" validate:"required"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type LoginRequest struct {
	UserName string `json:"userName" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=UserName,omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	Registration string    `json:"registration"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	UserName     string    `json:"userName"`
	UserProfile  string    `json:"userProfile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Registration: user.Registration,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		UserName:     user.UserName,
		UserProfile:  string(user.UserProfile),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

type ActivityResponse struct {
	Action    string         `json:"action"`
	IPAddress *string        `json:"ipAddress,omitempty"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func ActivityResponsesFromEntities(logs []entity.SecurityLog) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, ActivityResponse{
			Action:    string(log.Action),
			IPAddress: log.IPAddress,
			Metadata:  log.Metadata,
			CreatedAt: log.CreatedAt,
		})
	}
	return responses
}
