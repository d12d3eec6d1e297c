package model

import (
	"time"

	"gorm.io/datatypes"
)

// EvolutionRecord is the progress log of a single session with a student.
type EvolutionRecord struct {
	ID                   uint       `gorm:"primaryKey"`
	StudentID            uint       `gorm:"not null;index"`
	Student              Student    `gorm:"foreignKey:StudentID"`
	InstructorID         uint       `gorm:"not null;index"`
	Instructor           Instructor `gorm:"foreignKey:InstructorID"`
	Date                 string     `gorm:"type:varchar(10);not null;index"`
	SessionNumber        *int
	Focus                *string                     `gorm:"type:varchar(255)"`
	ExercisesPerformed   datatypes.JSONSlice[string] `gorm:"column:exercises_performed"`
	ProgressNotes        *string                     `gorm:"type:text"`
	DifficultiesObserved *string                     `gorm:"type:text"`
	Improvements         *string                     `gorm:"type:text"`
	NextSessionGoals     *string                     `gorm:"type:text"`
	OverallRating        *int
	PainLevel            *int
	MobilityLevel        *int
	StrengthLevel        *int
	BalanceLevel         *int
	EnduranceLevel       *int
	Observations         *string                     `gorm:"type:text"`
	Equipment            datatypes.JSONSlice[string] `gorm:"column:equipment"`
	Duration             *int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EvolutionRecordRequest is the body accepted by evolution record create and update.
// On update only supplied fields overwrite the stored record.
type EvolutionRecordRequest struct {
	StudentID            uint     `json:"studentId" binding:"required"`
	InstructorID         uint     `json:"instructorId" binding:"required"`
	Date                 string   `json:"date" binding:"required,isodate"`
	SessionNumber        *int     `json:"sessionNumber" binding:"omitempty,min=1"`
	Focus                *string  `json:"focus" binding:"omitempty,max=255"`
	ExercisesPerformed   []string `json:"exercisesPerformed"`
	ProgressNotes        *string  `json:"progressNotes"`
	DifficultiesObserved *string  `json:"difficultiesObserved"`
	Improvements         *string  `json:"improvements"`
	NextSessionGoals     *string  `json:"nextSessionGoals"`
	OverallRating        *int     `json:"overallRating" binding:"omitempty,min=1,max=5"`
	PainLevel            *int     `json:"painLevel" binding:"omitempty,min=0,max=10"`
	MobilityLevel        *int     `json:"mobilityLevel" binding:"omitempty,min=0,max=5"`
	StrengthLevel        *int     `json:"strengthLevel" binding:"omitempty,min=0,max=5"`
	BalanceLevel         *int     `json:"balanceLevel" binding:"omitempty,min=0,max=5"`
	EnduranceLevel       *int     `json:"enduranceLevel" binding:"omitempty,min=0,max=5"`
	Observations         *string  `json:"observations"`
	Equipment            []string `json:"equipment"`
	Duration             *int     `json:"duration" binding:"omitempty,min=1"`
}

// EvolutionRecordResponse is a session log with its references projected to info shapes.
// @Description Evolution record information
type EvolutionRecordResponse struct {
	ID                   uint           `json:"id"`
	Student              StudentInfo    `json:"student"`
	Instructor           InstructorInfo `json:"instructor"`
	Date                 string         `json:"date"`
	SessionNumber        *int           `json:"sessionNumber"`
	Focus                *string        `json:"focus"`
	ExercisesPerformed   []string       `json:"exercisesPerformed"`
	ProgressNotes        *string        `json:"progressNotes"`
	DifficultiesObserved *string        `json:"difficultiesObserved"`
	Improvements         *string        `json:"improvements"`
	NextSessionGoals     *string        `json:"nextSessionGoals"`
	OverallRating        *int           `json:"overallRating"`
	PainLevel            *int           `json:"painLevel"`
	MobilityLevel        *int           `json:"mobilityLevel"`
	StrengthLevel        *int           `json:"strengthLevel"`
	BalanceLevel         *int           `json:"balanceLevel"`
	EnduranceLevel       *int           `json:"enduranceLevel"`
	Observations         *string        `json:"observations"`
	Equipment            []string       `json:"equipment"`
	Duration             *int           `json:"duration"`
}
