package model

import "time"

// ScheduleStatus is the lifecycle state of a booking.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "SCHEDULED"
	ScheduleStatusConfirmed ScheduleStatus = "CONFIRMED"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
	ScheduleStatusNoShow    ScheduleStatus = "NO_SHOW"
)

// PaymentStatus is the settlement state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusOverdue  PaymentStatus = "OVERDUE"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Schedule is one booked class: a student with an instructor for a class type
// in a time slot. Date and times are stored as ISO strings (YYYY-MM-DD, HH:MM:SS)
// so ordering on the columns is chronological in every dialect.
type Schedule struct {
	ID            uint           `gorm:"primaryKey"`
	StudentID     uint           `gorm:"not null;index"`
	Student       Student        `gorm:"foreignKey:StudentID"`
	InstructorID  uint           `gorm:"not null;index"`
	Instructor    Instructor     `gorm:"foreignKey:InstructorID"`
	ClassTypeID   uint           `gorm:"not null;index"`
	ClassType     ClassType      `gorm:"foreignKey:ClassTypeID"`
	Date          string         `gorm:"type:varchar(10);not null;index"`
	StartTime     string         `gorm:"type:varchar(8);not null"`
	EndTime       string         `gorm:"type:varchar(8);not null"`
	Status        ScheduleStatus `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(20);not null"`
	Price         *float64       `gorm:"type:decimal(10,2)"`
	Room          string         `gorm:"type:varchar(50)"`
	Notes         string         `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ScheduleRequest is the body accepted by schedule create and update.
type ScheduleRequest struct {
	StudentID     uint           `json:"studentId" binding:"required" example:"1"`
	InstructorID  uint           `json:"instructorId" binding:"required" example:"1"`
	ClassTypeID   uint           `json:"classTypeId" binding:"required" example:"1"`
	Date          string         `json:"date" binding:"required,isodate,futureorpresent" example:"2025-03-10"`
	StartTime     string         `json:"startTime" binding:"required,clocktime" example:"09:00"`
	EndTime       string         `json:"endTime" binding:"required,clocktime" example:"10:00"`
	Status        ScheduleStatus `json:"status" binding:"required,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW" example:"SCHEDULED"`
	PaymentStatus PaymentStatus  `json:"paymentStatus" binding:"required,oneof=PENDING PAID OVERDUE REFUNDED" example:"PENDING"`
	Price         *float64       `json:"price" binding:"omitempty,min=0" example:"120"`
	Room          string         `json:"room" binding:"max=50" example:"Studio 2"`
	Notes         string         `json:"notes"`
}

// ScheduleResponse is a booking with its references projected to info shapes.
// @Description Schedule information
type ScheduleResponse struct {
	ID            uint           `json:"id" example:"1"`
	Student       StudentInfo    `json:"student"`
	Instructor    InstructorInfo `json:"instructor"`
	ClassType     ClassTypeInfo  `json:"classType"`
	Date          string         `json:"date" example:"2025-03-10"`
	StartTime     string         `json:"startTime" example:"09:00:00"`
	EndTime       string         `json:"endTime" example:"10:00:00"`
	Status        ScheduleStatus `json:"status" example:"SCHEDULED"`
	PaymentStatus PaymentStatus  `json:"paymentStatus" example:"PENDING"`
	Price         *float64       `json:"price" example:"120"`
	Room          string         `json:"room" example:"Studio 2"`
	Notes         string         `json:"notes"`
}
