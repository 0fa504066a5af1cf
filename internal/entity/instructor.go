package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Instructor struct {
	ID              string                      `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Registration    string                      `gorm:"type:varchar(30);uniqueIndex;not null" bson:"registration" json:"registration"`
	CPF             string                      `gorm:"column:cpf;type:varchar(11);uniqueIndex;not null" bson:"cpf" json:"cpf"`
	Name            string                      `gorm:"type:varchar(100);not null" bson:"name" json:"name"`
	Email           string                      `gorm:"type:varchar(50);uniqueIndex;not null" bson:"email" json:"email"`
	Phone           string                      `gorm:"type:varchar(15);uniqueIndex;not null" bson:"phone" json:"phone"`
	Specializations datatypes.JSONSlice[string] `bson:"specializations" json:"specializations"`
	Status          PersonStatus                `gorm:"type:varchar(10);default:'active';not null" bson:"status" json:"status"`
	LinkedTo        string                      `gorm:"type:varchar(36);index;not null" bson:"linked_to" json:"linkedTo"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

func (i Instructor) OwnerID() string {
	return i.LinkedTo
}
