package entity

import "time"

type UserProfile string

const (
	UserProfileTeacher UserProfile = "teacher"
	UserProfileAdmin   UserProfile = "admin"
)

type User struct {
	ID           string      `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Registration string      `gorm:"type:varchar(30);uniqueIndex;not null" bson:"registration" json:"registration"`
	Name         string      `gorm:"type:varchar(100);not null" bson:"name" json:"name"`
	Email        string      `gorm:"type:varchar(50);uniqueIndex;not null" bson:"email" json:"email"`
	Phone        string      `gorm:"type:varchar(15);uniqueIndex;not null" bson:"phone" json:"phone"`
	UserName     string      `gorm:"type:varchar(30);uniqueIndex;not null" bson:"user_name" json:"userName"`
	PasswordHash string      `gorm:"type:text;not null" bson:"password_hash" json:"-"`
	UserProfile  UserProfile `gorm:"type:varchar(20);default:'teacher';not null" bson:"user_profile" json:"userProfile"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// OwnerID makes a user its own owner: only the user may change itself.
func (u User) OwnerID() string {
	return u.ID
}
