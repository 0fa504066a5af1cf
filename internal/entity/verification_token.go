package entity

import "time"

// VerificationToken holds the pending email code. One row per email; issuing
// a new code replaces the previous one.
type VerificationToken struct {
	ID    string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"-"`
	Email string `gorm:"type:varchar(50);uniqueIndex;not null" bson:"email" json:"email"`
	Code  string `gorm:"type:char(6);not null" bson:"code" json:"-"`

	CreatedAt time.Time `gorm:"index" bson:"created_at" json:"createdAt"`
}

func (t VerificationToken) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.CreatedAt) >= ttl
}
