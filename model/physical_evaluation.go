package model

import (
	"time"

	"gorm.io/datatypes"
)

// EvaluationType classifies a physical evaluation within a treatment cycle.
type EvaluationType string

const (
	EvaluationInitial      EvaluationType = "INITIAL"
	EvaluationProgress     EvaluationType = "PROGRESS"
	EvaluationReassessment EvaluationType = "REASSESSMENT"
	EvaluationDischarge    EvaluationType = "DISCHARGE"
)

// EvaluationAnamnesis is the clinical history taken during a specific evaluation.
type EvaluationAnamnesis struct {
	MainComplaint             *string `json:"mainComplaint" gorm:"type:text"`
	ClinicalDiagnosis         *string `json:"clinicalDiagnosis" gorm:"type:text"`
	Medications               *string `json:"medications" gorm:"type:text"`
	ResponsibleDoctor         *string `json:"responsibleDoctor" gorm:"type:varchar(150)"`
	PreviousPilatesExperience *string `json:"previousPilatesExperience" gorm:"type:text"`
	HistoryOfPresentIllness   *string `json:"historyOfPresentIllness" gorm:"type:text"`
	AssociatedPathologies     *string `json:"associatedPathologies" gorm:"type:text"`
	ComplementaryExams        *string `json:"complementaryExams" gorm:"type:text"`
	HistoryOfPastIllness      *string `json:"historyOfPastIllness" gorm:"type:text"`
	PhysicalFunctionalExam    *string `json:"physicalFunctionalExam" gorm:"type:text"`
}

// BodyMeasurements are circumferences in centimetres.
type BodyMeasurements struct {
	Chest *float64 `json:"chest" binding:"omitempty,gt=0"`
	Waist *float64 `json:"waist" binding:"omitempty,gt=0"`
	Hip   *float64 `json:"hip" binding:"omitempty,gt=0"`
	Thigh *float64 `json:"thigh" binding:"omitempty,gt=0"`
	Arm   *float64 `json:"arm" binding:"omitempty,gt=0"`
}

// FmsScores are Functional Movement Screen results, 0 to 3 per test.
type FmsScores struct {
	DeepSquat              *int `json:"deepSquat" binding:"omitempty,min=0,max=3"`
	HurdleStep             *int `json:"hurdleStep" binding:"omitempty,min=0,max=3"`
	InLineLunge            *int `json:"inLineLunge" binding:"omitempty,min=0,max=3"`
	ShoulderMobility       *int `json:"shoulderMobility" binding:"omitempty,min=0,max=3"`
	ActiveStraightLegRaise *int `json:"activeStraightLegRaise" binding:"omitempty,min=0,max=3"`
	TrunkStabilityPushUp   *int `json:"trunkStabilityPushUp" binding:"omitempty,min=0,max=3"`
	RotaryStability        *int `json:"rotaryStability" binding:"omitempty,min=0,max=3"`
}

// FlexibilityScores are joint ranges in degrees.
type FlexibilityScores struct {
	ShoulderFlexion *int `json:"shoulderFlexion" binding:"omitempty,min=0,max=360"`
	SpinalFlexion   *int `json:"spinalFlexion" binding:"omitempty,min=0,max=360"`
	HipFlexion      *int `json:"hipFlexion" binding:"omitempty,min=0,max=360"`
	AnkleFlexion    *int `json:"ankleFlexion" binding:"omitempty,min=0,max=360"`
}

// StrengthScores grade regions 0 to 5; Grip is a dynamometer reading in kg.
type StrengthScores struct {
	Core      *int     `json:"core" binding:"omitempty,min=0,max=5"`
	UpperBody *int     `json:"upperBody" binding:"omitempty,min=0,max=5"`
	LowerBody *int     `json:"lowerBody" binding:"omitempty,min=0,max=5"`
	Grip      *float64 `json:"grip" binding:"omitempty,min=0"`
}

// BalanceScores grade balance dimensions 0 to 5.
type BalanceScores struct {
	StaticBalance  *int `json:"staticBalance" binding:"omitempty,min=0,max=5"`
	DynamicBalance *int `json:"dynamicBalance" binding:"omitempty,min=0,max=5"`
	Proprioception *int `json:"proprioception" binding:"omitempty,min=0,max=5"`
}

// AnatomicalMarker is a free-form annotated point on the body diagram.
type AnatomicalMarker struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Type        string  `json:"type" binding:"required,max=50" example:"pain"`
	Description string  `json:"description"`
}

// PhysicalEvaluation is a point-in-time clinical assessment of a student.
// Markers live in a single JSON column rather than a child table.
type PhysicalEvaluation struct {
	ID                  uint                                  `gorm:"primaryKey"`
	StudentID           uint                                  `gorm:"not null;index"`
	Student             Student                               `gorm:"foreignKey:StudentID"`
	InstructorID        uint                                  `gorm:"not null;index"`
	Instructor          Instructor                            `gorm:"foreignKey:InstructorID"`
	Date                string                                `gorm:"type:varchar(10);not null;index"`
	Type                EvaluationType                        `gorm:"type:varchar(20);not null"`
	Anamnesis           EvaluationAnamnesis                   `gorm:"embedded"`
	Weight              *float64                              `gorm:"column:weight"`
	Height              *float64                              `gorm:"column:height"`
	BMI                 *float64                              `gorm:"column:bmi"`
	BloodPressure       *string                               `gorm:"type:varchar(20)"`
	HeartRate           *int                                  `gorm:"column:heart_rate"`
	BodyFat             *float64                              `gorm:"column:body_fat"`
	MuscleMass          *float64                              `gorm:"column:muscle_mass"`
	Measurements        BodyMeasurements                      `gorm:"embedded;embeddedPrefix:measurement_"`
	Fms                 FmsScores                             `gorm:"embedded;embeddedPrefix:fms_"`
	Flexibility         FlexibilityScores                     `gorm:"embedded;embeddedPrefix:flexibility_"`
	Strength            StrengthScores                        `gorm:"embedded;embeddedPrefix:strength_"`
	Balance             BalanceScores                         `gorm:"embedded;embeddedPrefix:balance_"`
	AnatomicalMarkers   datatypes.JSONSlice[AnatomicalMarker] `gorm:"column:anatomical_markers"`
	MedicalObservations *string                               `gorm:"type:text"`
	Objectives          *string                               `gorm:"type:text"`
	TreatmentPlan       *string                               `gorm:"type:text"`
	NextEvaluationDate  *string                               `gorm:"type:varchar(10)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PhysicalEvaluationRequest is the canonical evaluation payload: clinical history
// nested under anamnesis and each score group as its own object. BMI is not
// accepted; it is derived from weight and height.
type PhysicalEvaluationRequest struct {
	StudentID           uint                 `json:"studentId" binding:"required"`
	InstructorID        uint                 `json:"instructorId" binding:"required"`
	Date                string               `json:"date" binding:"required,isodate"`
	Type                EvaluationType       `json:"type" binding:"required,oneof=INITIAL PROGRESS REASSESSMENT DISCHARGE"`
	Anamnesis           *EvaluationAnamnesis `json:"anamnesis"`
	Weight              *float64             `json:"weight" binding:"omitempty,gt=0,lte=500"`
	Height              *float64             `json:"height" binding:"omitempty,gte=0,lte=3"`
	BloodPressure       *string              `json:"bloodPressure" binding:"omitempty,max=20"`
	HeartRate           *int                 `json:"heartRate" binding:"omitempty,min=0,max=300"`
	BodyFat             *float64             `json:"bodyFat" binding:"omitempty,min=0,max=100"`
	MuscleMass          *float64             `json:"muscleMass" binding:"omitempty,min=0"`
	Measurements        *BodyMeasurements    `json:"measurements"`
	Fms                 *FmsScores           `json:"fms"`
	Flexibility         *FlexibilityScores   `json:"flexibility"`
	Strength            *StrengthScores      `json:"strength"`
	Balance             *BalanceScores       `json:"balance"`
	AnatomicalMarkers   []AnatomicalMarker   `json:"anatomicalMarkers" binding:"omitempty,dive"`
	MedicalObservations *string              `json:"medicalObservations"`
	Objectives          *string              `json:"objectives"`
	TreatmentPlan       *string              `json:"treatmentPlan"`
	NextEvaluationDate  *string              `json:"nextEvaluationDate" binding:"omitempty,isodate"`
}

// PhysicalEvaluationResponse mirrors the request shape plus identity and derived BMI.
// @Description Physical evaluation information
type PhysicalEvaluationResponse struct {
	ID                  uint                 `json:"id"`
	Student             StudentInfo          `json:"student"`
	Instructor          InstructorInfo       `json:"instructor"`
	Date                string               `json:"date"`
	Type                EvaluationType       `json:"type"`
	Anamnesis           *EvaluationAnamnesis `json:"anamnesis"`
	Weight              *float64             `json:"weight"`
	Height              *float64             `json:"height"`
	BMI                 *float64             `json:"bmi"`
	BloodPressure       *string              `json:"bloodPressure"`
	HeartRate           *int                 `json:"heartRate"`
	BodyFat             *float64             `json:"bodyFat"`
	MuscleMass          *float64             `json:"muscleMass"`
	Measurements        *BodyMeasurements    `json:"measurements"`
	Fms                 *FmsScores           `json:"fms"`
	Flexibility         *FlexibilityScores   `json:"flexibility"`
	Strength            *StrengthScores      `json:"strength"`
	Balance             *BalanceScores       `json:"balance"`
	AnatomicalMarkers   []AnatomicalMarker   `json:"anatomicalMarkers"`
	MedicalObservations *string              `json:"medicalObservations"`
	Objectives          *string              `json:"objectives"`
	TreatmentPlan       *string              `json:"treatmentPlan"`
	NextEvaluationDate  *string              `json:"nextEvaluationDate"`
}
