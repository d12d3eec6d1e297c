package service

import (
	"github.com/ariebrainware/pilates-studio/model"
	"gorm.io/gorm"
)

func selectColumns(cols ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(cols)
	}
}

// withPeopleRefs preloads the student and instructor projections of a clinical record.
func withPeopleRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Student", selectColumns("id", "name")).
		Preload("Instructor", selectColumns("id", "name"))
}

// withScheduleRefs preloads every projection a ScheduleResponse needs.
func withScheduleRefs(db *gorm.DB) *gorm.DB {
	return withPeopleRefs(db).Preload("ClassType", selectColumns("id", "name", "color"))
}

func studentInfo(s model.Student) model.StudentInfo {
	return model.StudentInfo{ID: s.ID, Name: s.Name}
}

func instructorInfo(i model.Instructor) model.InstructorInfo {
	return model.InstructorInfo{ID: i.ID, Name: i.Name}
}

func classTypeInfo(c model.ClassType) model.ClassTypeInfo {
	return model.ClassTypeInfo{ID: c.ID, Name: c.Name, Color: c.Color}
}

func toScheduleView(s model.Schedule) model.ScheduleResponse {
	return model.ScheduleResponse{
		ID:            s.ID,
		Student:       studentInfo(s.Student),
		Instructor:    instructorInfo(s.Instructor),
		ClassType:     classTypeInfo(s.ClassType),
		Date:          s.Date,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		Price:         s.Price,
		Room:          s.Room,
		Notes:         s.Notes,
	}
}

// groupOrNil hides a score group whose fields are all unset.
func groupOrNil[T comparable](g T) *T {
	var zero T
	if g == zero {
		return nil
	}
	return &g
}

// assign overwrites *dst with src when src is supplied.
func assign[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// stringList copies a JSON column into a response list that is never null.
func stringList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func toPhysicalEvaluationView(e model.PhysicalEvaluation) model.PhysicalEvaluationResponse {
	markers := make([]model.AnatomicalMarker, len(e.AnatomicalMarkers))
	copy(markers, e.AnatomicalMarkers)

	return model.PhysicalEvaluationResponse{
		ID:                  e.ID,
		Student:             studentInfo(e.Student),
		Instructor:          instructorInfo(e.Instructor),
		Date:                e.Date,
		Type:                e.Type,
		Anamnesis:           groupOrNil(e.Anamnesis),
		Weight:              e.Weight,
		Height:              e.Height,
		BMI:                 e.BMI,
		BloodPressure:       e.BloodPressure,
		HeartRate:           e.HeartRate,
		BodyFat:             e.BodyFat,
		MuscleMass:          e.MuscleMass,
		Measurements:        groupOrNil(e.Measurements),
		Fms:                 groupOrNil(e.Fms),
		Flexibility:         groupOrNil(e.Flexibility),
		Strength:            groupOrNil(e.Strength),
		Balance:             groupOrNil(e.Balance),
		AnatomicalMarkers:   markers,
		MedicalObservations: e.MedicalObservations,
		Objectives:          e.Objectives,
		TreatmentPlan:       e.TreatmentPlan,
		NextEvaluationDate:  e.NextEvaluationDate,
	}
}

func toEvolutionRecordView(r model.EvolutionRecord) model.EvolutionRecordResponse {
	return model.EvolutionRecordResponse{
		ID:                   r.ID,
		Student:              studentInfo(r.Student),
		Instructor:           instructorInfo(r.Instructor),
		Date:                 r.Date,
		SessionNumber:        r.SessionNumber,
		Focus:                r.Focus,
		ExercisesPerformed:   stringList(r.ExercisesPerformed),
		ProgressNotes:        r.ProgressNotes,
		DifficultiesObserved: r.DifficultiesObserved,
		Improvements:         r.Improvements,
		NextSessionGoals:     r.NextSessionGoals,
		OverallRating:        r.OverallRating,
		PainLevel:            r.PainLevel,
		MobilityLevel:        r.MobilityLevel,
		StrengthLevel:        r.StrengthLevel,
		BalanceLevel:         r.BalanceLevel,
		EnduranceLevel:       r.EnduranceLevel,
		Observations:         r.Observations,
		Equipment:            stringList(r.Equipment),
		Duration:             r.Duration,
	}
}
