package service

import (
	"errors"
	"time"

	"classmanager/internal/entity"
	"classmanager/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, errors.New("token issuer not configured")
	}
	return j.Manager.IssueAccessToken(user.ID, string(user.UserProfile))
}
