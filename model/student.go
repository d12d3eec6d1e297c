package model

import "time"

// StudentStatus is the enrolment state of a student.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusInactive  StudentStatus = "INACTIVE"
	StudentStatusSuspended StudentStatus = "SUSPENDED"
)

// Anamnesis is the intake history captured when a student registers.
type Anamnesis struct {
	Allergies        string `json:"allergies" gorm:"type:text"`
	Surgeries        string `json:"surgeries" gorm:"type:text"`
	Medications      string `json:"medications" gorm:"type:text"`
	Restrictions     string `json:"restrictions" gorm:"type:text"`
	HeartCondition   bool   `json:"heartCondition" gorm:"not null;default:false"`
	Dizziness        bool   `json:"dizziness" gorm:"not null;default:false"`
	BoneJointProblem bool   `json:"boneJointProblem" gorm:"not null;default:false"`
	Diabetes         bool   `json:"diabetes" gorm:"not null;default:false"`
	Hypertension     bool   `json:"hypertension" gorm:"not null;default:false"`
	Objectives       string `json:"objectives" gorm:"type:text"`
}

// Student represents a registered studio student
// @Description Student information
type Student struct {
	ID               uint          `json:"id" gorm:"primaryKey" example:"1"`
	Name             string        `json:"name" gorm:"type:varchar(150);not null" example:"Maria Souza"`
	Email            *string       `json:"email,omitempty" gorm:"type:varchar(191);uniqueIndex" example:"maria@example.com"`
	Phone            string        `json:"phone" gorm:"type:varchar(30)" example:"11987654321"`
	BirthDate        *string       `json:"birthDate,omitempty" gorm:"type:varchar(10)" example:"1990-04-12"`
	Sex              string        `json:"sex" gorm:"type:varchar(20)" example:"FEMALE"`
	Address          string        `json:"address" gorm:"type:varchar(255)"`
	EmergencyContact string        `json:"emergencyContact" gorm:"type:varchar(150)"`
	EmergencyPhone   string        `json:"emergencyPhone" gorm:"type:varchar(30)"`
	Status           StudentStatus `json:"status" gorm:"type:varchar(20);not null" example:"ACTIVE"`
	Plan             string        `json:"plan" gorm:"type:varchar(100)" example:"2x per week"`
	Anamnesis        Anamnesis     `json:"anamnesis" gorm:"embedded;embeddedPrefix:anamnesis_"`
	Documents        []Document    `json:"documents" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Document is the metadata of a file uploaded for a student. The storage path
// stays server side.
type Document struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"-" gorm:"not null;index"`
	FileName   string    `json:"fileName" gorm:"type:varchar(255);not null"`
	FileType   string    `json:"fileType" gorm:"type:varchar(100)"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate" gorm:"not null"`
	FilePath   string    `json:"-" gorm:"type:varchar(512);not null"`
}

// StudentInfo is the id+name projection embedded in bookings and clinical records.
type StudentInfo struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Maria Souza"`
}

// StudentRequest is the body accepted by student create and update.
type StudentRequest struct {
	Name             string        `json:"name" binding:"required,max=150"`
	Email            string        `json:"email" binding:"omitempty,email,max=191"`
	Phone            string        `json:"phone" binding:"max=30"`
	BirthDate        string        `json:"birthDate" binding:"omitempty,isodate,pastorpresent"`
	Sex              string        `json:"sex" binding:"max=20"`
	Address          string        `json:"address" binding:"max=255"`
	EmergencyContact string        `json:"emergencyContact" binding:"max=150"`
	EmergencyPhone   string        `json:"emergencyPhone" binding:"max=30"`
	Status           StudentStatus `json:"status" binding:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
	Plan             string        `json:"plan" binding:"max=100"`
	Anamnesis        *Anamnesis    `json:"anamnesis"`
}
