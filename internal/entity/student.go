package entity

import "time"

type PersonStatus string

const (
	StatusActive   PersonStatus = "active"
	StatusInactive PersonStatus = "inactive"
)

func (s PersonStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Student struct {
	ID           string       `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Registration string       `gorm:"type:varchar(30);uniqueIndex;not null" bson:"registration" json:"registration"`
	CPF          string       `gorm:"column:cpf;type:varchar(11);uniqueIndex;not null" bson:"cpf" json:"cpf"`
	Name         string       `gorm:"type:varchar(100);not null" bson:"name" json:"name"`
	Email        string       `gorm:"type:varchar(50);uniqueIndex;not null" bson:"email" json:"email"`
	Phone        string       `gorm:"type:varchar(15);uniqueIndex;not null" bson:"phone" json:"phone"`
	Status       PersonStatus `gorm:"type:varchar(10);default:'active';not null" bson:"status" json:"status"`
	LinkedTo     string       `gorm:"type:varchar(36);index;not null" bson:"linked_to" json:"linkedTo"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

func (s Student) OwnerID() string {
	return s.LinkedTo
}
