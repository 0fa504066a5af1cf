package entity

import (
	"time"

	"gorm.io/datatypes"
)

const MaxClassStudents = 50

type Modality string

const (
	ModalityInPerson Modality = "in-person"
	ModalityHybrid   Modality = "hybrid"
	ModalityRemote   Modality = "remote"
)

func (m Modality) Valid() bool {
	switch m {
	case ModalityInPerson, ModalityHybrid, ModalityRemote:
		return true
	}
	return false
}

type ClassStatus string

const (
	ClassNotStarted ClassStatus = "not_started"
	ClassInProgress ClassStatus = "in_progress"
	ClassCompleted  ClassStatus = "completed"
	ClassCancelled  ClassStatus = "cancelled"
)

func (s ClassStatus) Valid() bool {
	switch s {
	case ClassNotStarted, ClassInProgress, ClassCompleted, ClassCancelled:
		return true
	}
	return false
}

type Class struct {
	ID           string                      `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Code         string                      `gorm:"type:varchar(32);uniqueIndex;not null" bson:"code" json:"code"`
	Course       string                      `gorm:"type:varchar(80);not null" bson:"course" json:"course"`
	Modality     Modality                    `gorm:"type:varchar(20);not null" bson:"modality" json:"modality"`
	Students     datatypes.JSONSlice[string] `bson:"students" json:"students"`
	InstructorID *string                     `gorm:"type:varchar(36);index" bson:"instructor_id" json:"instructor"`
	StartDate    time.Time                   `gorm:"not null" bson:"start_date" json:"startDate"`
	EndDate      time.Time                   `gorm:"not null" bson:"end_date" json:"endDate"`
	Status       ClassStatus                 `gorm:"type:varchar(20);default:'not_started';not null" bson:"status" json:"status"`
	LinkedTo     string                      `gorm:"type:varchar(36);index;not null" bson:"linked_to" json:"linkedTo"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

func (c Class) OwnerID() string {
	return c.LinkedTo
}

func (c Class) HasStudent(id string) bool {
	for _, studentID := range c.Students {
		if studentID == id {
			return true
		}
	}
	return false
}
