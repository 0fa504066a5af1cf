package service

import (
	"context"
	"encoding/json"

	"classmanager/internal/entity"
	"classmanager/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// logSecurity writes an audit entry. Failures are logged and never fail the
// calling workflow.
func logSecurity(
	ctx context.Context,
	logs repository.SecurityLogRepository,
	clock Clock,
	logger logrus.FieldLogger,
	userID *string,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) {
	if logs == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			logger.WithError(err).Warn("encode security log metadata")
			return
		}
		payload = datatypes.JSON(bytes)
	}

	entry := &entity.SecurityLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
		CreatedAt: currentTime(clock),
	}
	if err := logs.Log(ctx, entry); err != nil {
		logger.WithError(err).WithField("action", action).Warn("write security log")
	}
}
