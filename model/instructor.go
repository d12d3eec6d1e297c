package model

import (
	"time"

	"gorm.io/datatypes"
)

// InstructorRole is the access role granted to an instructor account.
type InstructorRole string

const (
	RoleAdmin      InstructorRole = "ROLE_ADMIN"
	RoleInstructor InstructorRole = "ROLE_INSTRUCTOR"
)

// InstructorStatus is the employment state of an instructor.
type InstructorStatus string

const (
	InstructorStatusActive   InstructorStatus = "ACTIVE"
	InstructorStatusInactive InstructorStatus = "INACTIVE"
	InstructorStatusOnLeave  InstructorStatus = "ON_LEAVE"
)

// Instructor represents a studio instructor
// @Description Instructor information
type Instructor struct {
	ID               uint                        `json:"id" gorm:"primaryKey" example:"1"`
	Name             string                      `json:"name" gorm:"type:varchar(150);not null" example:"Ana Lima"`
	Email            string                      `json:"email" gorm:"type:varchar(191);not null;uniqueIndex" example:"ana@studio.com"`
	Password         string                      `json:"-" gorm:"type:varchar(255);not null"`
	Role             InstructorRole              `json:"role" gorm:"type:varchar(30);not null" example:"ROLE_INSTRUCTOR"`
	Phone            string                      `json:"phone" gorm:"type:varchar(30)"`
	Sex              string                      `json:"sex" gorm:"type:varchar(20)"`
	BirthDate        *string                     `json:"birthDate,omitempty" gorm:"type:varchar(10)"`
	Address          string                      `json:"address" gorm:"type:varchar(255)"`
	EmergencyContact string                      `json:"emergencyContact" gorm:"type:varchar(150)"`
	EmergencyPhone   string                      `json:"emergencyPhone" gorm:"type:varchar(30)"`
	Specialties      datatypes.JSONSlice[string] `json:"specialties"`
	Certifications   datatypes.JSONSlice[string] `json:"certifications"`
	Bio              string                      `json:"bio" gorm:"type:text"`
	Experience       string                      `json:"experience" gorm:"type:text"`
	Status           InstructorStatus            `json:"status" gorm:"type:varchar(20);not null" example:"ACTIVE"`
	HireDate         *string                     `json:"hireDate,omitempty" gorm:"type:varchar(10)"`
	HourlyRate       *float64                    `json:"hourlyRate,omitempty" gorm:"type:decimal(10,2)"`
	WorkingHours     []WorkingHours              `json:"workingHours" gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// WorkingHours is one weekly availability window owned by an instructor.
type WorkingHours struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	InstructorID uint   `json:"-" gorm:"not null;index"`
	DayOfWeek    string `json:"dayOfWeek" gorm:"type:varchar(10);not null" example:"MONDAY"`
	StartTime    string `json:"startTime" gorm:"type:varchar(8);not null" example:"08:00:00"`
	EndTime      string `json:"endTime" gorm:"type:varchar(8);not null" example:"12:00:00"`
	IsAvailable  bool   `json:"isAvailable" gorm:"not null"`
}

// InstructorInfo is the id+name projection embedded in bookings and clinical records.
type InstructorInfo struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Ana Lima"`
}

// WorkingHoursRequest is one availability window in an instructor payload.
type WorkingHoursRequest struct {
	DayOfWeek   string `json:"dayOfWeek" binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime   string `json:"startTime" binding:"required,clocktime"`
	EndTime     string `json:"endTime" binding:"required,clocktime"`
	IsAvailable *bool  `json:"isAvailable" binding:"required"`
}

// InstructorRequest is the body accepted by instructor create and update.
// Password is required on create only; WorkingHours replaces the whole list when present.
type InstructorRequest struct {
	Name             string                `json:"name" binding:"required,max=150"`
	Email            string                `json:"email" binding:"required,email,max=191"`
	Password         string                `json:"password" binding:"omitempty,min=8,max=72"`
	Role             InstructorRole        `json:"role" binding:"required,oneof=ROLE_ADMIN ROLE_INSTRUCTOR"`
	Phone            string                `json:"phone" binding:"max=30"`
	Sex              string                `json:"sex" binding:"max=20"`
	BirthDate        string                `json:"birthDate" binding:"omitempty,isodate,pastorpresent"`
	Address          string                `json:"address" binding:"max=255"`
	EmergencyContact string                `json:"emergencyContact" binding:"max=150"`
	EmergencyPhone   string                `json:"emergencyPhone" binding:"max=30"`
	Specialties      []string              `json:"specialties"`
	Certifications   []string              `json:"certifications"`
	Bio              string                `json:"bio"`
	Experience       string                `json:"experience"`
	Status           InstructorStatus      `json:"status" binding:"required,oneof=ACTIVE INACTIVE ON_LEAVE"`
	HireDate         string                `json:"hireDate" binding:"omitempty,isodate"`
	HourlyRate       *float64              `json:"hourlyRate" binding:"omitempty,min=0"`
	WorkingHours     []WorkingHoursRequest `json:"workingHours" binding:"omitempty,dive"`
}
