package entity

import (
	"time"

	"gorm.io/datatypes"
)

type SecurityAction string

const (
	LoginSuccess         SecurityAction = "login_success"
	LoginFailed          SecurityAction = "login_failed"
	VerificationIssued   SecurityAction = "verification_issued"
	VerificationRejected SecurityAction = "verification_rejected"
)

type SecurityLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" bson:"_id"`

	UserID *string `gorm:"type:varchar(36);index" bson:"user_id,omitempty"`

	IPAddress *string        `gorm:"type:varchar(45)" bson:"ip_address,omitempty"`
	Action    SecurityAction `gorm:"type:varchar(40);not null" bson:"action"`

	Metadata datatypes.JSON `bson:"-"`

	CreatedAt time.Time `bson:"created_at"`
}
