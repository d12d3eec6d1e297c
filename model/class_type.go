package model

import (
	"time"

	"gorm.io/datatypes"
)

// ClassIntensity grades how demanding a class type is.
type ClassIntensity string

const (
	IntensityLow    ClassIntensity = "LOW"
	IntensityMedium ClassIntensity = "MEDIUM"
	IntensityHigh   ClassIntensity = "HIGH"
)

// ClassType is a catalog entry for a bookable class
// @Description Class type information
type ClassType struct {
	ID          uint                        `json:"id" gorm:"primaryKey" example:"1"`
	Name        string                      `json:"name" gorm:"type:varchar(100);not null;uniqueIndex" example:"Reformer"`
	Description string                      `json:"description" gorm:"type:text"`
	Duration    int                         `json:"duration" gorm:"not null" example:"55"`
	Price       float64                     `json:"price" gorm:"type:decimal(10,2);not null" example:"120.00"`
	Capacity    int                         `json:"capacity" gorm:"not null" example:"3"`
	Intensity   ClassIntensity              `json:"intensity" gorm:"type:varchar(10);not null" example:"MEDIUM"`
	Color       string                      `json:"color" gorm:"type:varchar(20)" example:"#8b5cf6"`
	Equipment   datatypes.JSONSlice[string] `json:"equipment"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// ClassTypeInfo is the projection of a class type embedded in bookings.
type ClassTypeInfo struct {
	ID    uint   `json:"id" example:"1"`
	Name  string `json:"name" example:"Reformer"`
	Color string `json:"color" example:"#8b5cf6"`
}

// ClassTypeRequest is the body accepted by class type create and update.
type ClassTypeRequest struct {
	Name        string         `json:"name" binding:"required,max=100"`
	Description string         `json:"description"`
	Duration    int            `json:"duration" binding:"required,min=1"`
	Price       *float64       `json:"price" binding:"required,min=0"`
	Capacity    int            `json:"capacity" binding:"required,min=1"`
	Intensity   ClassIntensity `json:"intensity" binding:"required,oneof=LOW MEDIUM HIGH"`
	Color       string         `json:"color" binding:"max=20"`
	Equipment   []string       `json:"equipment"`
}
