package service

import (
	"errors"
	"math"

	"github.com/ariebrainware/pilates-studio/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EvaluationService manages the clinical record of a student: physical
// evaluations and session evolution records.
type EvaluationService struct {
	db  *gorm.DB
	dir Directory
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{db: db, dir: GormDirectory{}}
}

// CalculateBMI returns weight/height² rounded half-up to one decimal, or nil
// unless a weight and a strictly positive height are both known.
func CalculateBMI(weight, height *float64) *float64 {
	if weight == nil || height == nil || *height <= 0 {
		return nil
	}
	bmi := math.Round(*weight/(*height**height)*10) / 10
	return &bmi
}

// mergeAnamnesis overwrites each field of dst that src supplies.
func mergeAnamnesis(dst *model.EvaluationAnamnesis, src *model.EvaluationAnamnesis) {
	if src == nil {
		return
	}
	assign(&dst.MainComplaint, src.MainComplaint)
	assign(&dst.ClinicalDiagnosis, src.ClinicalDiagnosis)
	assign(&dst.Medications, src.Medications)
	assign(&dst.ResponsibleDoctor, src.ResponsibleDoctor)
	assign(&dst.PreviousPilatesExperience, src.PreviousPilatesExperience)
	assign(&dst.HistoryOfPresentIllness, src.HistoryOfPresentIllness)
	assign(&dst.AssociatedPathologies, src.AssociatedPathologies)
	assign(&dst.ComplementaryExams, src.ComplementaryExams)
	assign(&dst.HistoryOfPastIllness, src.HistoryOfPastIllness)
	assign(&dst.PhysicalFunctionalExam, src.PhysicalFunctionalExam)
}

func mergeMeasurements(dst *model.BodyMeasurements, src *model.BodyMeasurements) {
	if src == nil {
		return
	}
	assign(&dst.Chest, src.Chest)
	assign(&dst.Waist, src.Waist)
	assign(&dst.Hip, src.Hip)
	assign(&dst.Thigh, src.Thigh)
	assign(&dst.Arm, src.Arm)
}

func mergeFms(dst *model.FmsScores, src *model.FmsScores) {
	if src == nil {
		return
	}
	assign(&dst.DeepSquat, src.DeepSquat)
	assign(&dst.HurdleStep, src.HurdleStep)
	assign(&dst.InLineLunge, src.InLineLunge)
	assign(&dst.ShoulderMobility, src.ShoulderMobility)
	assign(&dst.ActiveStraightLegRaise, src.ActiveStraightLegRaise)
	assign(&dst.TrunkStabilityPushUp, src.TrunkStabilityPushUp)
	assign(&dst.RotaryStability, src.RotaryStability)
}

func mergeFlexibility(dst *model.FlexibilityScores, src *model.FlexibilityScores) {
	if src == nil {
		return
	}
	assign(&dst.ShoulderFlexion, src.ShoulderFlexion)
	assign(&dst.SpinalFlexion, src.SpinalFlexion)
	assign(&dst.HipFlexion, src.HipFlexion)
	assign(&dst.AnkleFlexion, src.AnkleFlexion)
}

func mergeStrength(dst *model.StrengthScores, src *model.StrengthScores) {
	if src == nil {
		return
	}
	assign(&dst.Core, src.Core)
	assign(&dst.UpperBody, src.UpperBody)
	assign(&dst.LowerBody, src.LowerBody)
	assign(&dst.Grip, src.Grip)
}

func mergeBalance(dst *model.BalanceScores, src *model.BalanceScores) {
	if src == nil {
		return
	}
	assign(&dst.StaticBalance, src.StaticBalance)
	assign(&dst.DynamicBalance, src.DynamicBalance)
	assign(&dst.Proprioception, src.Proprioception)
}

// applyPhysicalEvaluationRequest merges the supplied fields of req into e and
// recomputes BMI when the payload carries both weight and a positive height.
func applyPhysicalEvaluationRequest(e *model.PhysicalEvaluation, req model.PhysicalEvaluationRequest) {
	if req.Date != "" {
		e.Date = req.Date
	}
	if req.Type != "" {
		e.Type = req.Type
	}
	mergeAnamnesis(&e.Anamnesis, req.Anamnesis)
	assign(&e.Weight, req.Weight)
	assign(&e.Height, req.Height)
	assign(&e.BloodPressure, req.BloodPressure)
	assign(&e.HeartRate, req.HeartRate)
	assign(&e.BodyFat, req.BodyFat)
	assign(&e.MuscleMass, req.MuscleMass)
	mergeMeasurements(&e.Measurements, req.Measurements)
	mergeFms(&e.Fms, req.Fms)
	mergeFlexibility(&e.Flexibility, req.Flexibility)
	mergeStrength(&e.Strength, req.Strength)
	mergeBalance(&e.Balance, req.Balance)
	if req.AnatomicalMarkers != nil {
		e.AnatomicalMarkers = datatypes.NewJSONSlice(req.AnatomicalMarkers)
	}
	assign(&e.MedicalObservations, req.MedicalObservations)
	assign(&e.Objectives, req.Objectives)
	assign(&e.TreatmentPlan, req.TreatmentPlan)
	assign(&e.NextEvaluationDate, req.NextEvaluationDate)

	if bmi := CalculateBMI(req.Weight, req.Height); bmi != nil {
		e.BMI = bmi
	}
}

// resolvePeople loads the student and instructor of a clinical record.
func (s *EvaluationService) resolvePeople(tx *gorm.DB, studentID, instructorID uint) (*model.Student, *model.Instructor, error) {
	student, err := s.dir.FindStudentByID(tx, studentID)
	if err != nil {
		return nil, nil, err
	}
	instructor, err := s.dir.FindInstructorByID(tx, instructorID)
	if err != nil {
		return nil, nil, err
	}
	return student, instructor, nil
}

func (s *EvaluationService) CreatePhysicalEvaluation(req model.PhysicalEvaluationRequest) (*model.PhysicalEvaluationResponse, error) {
	var e model.PhysicalEvaluation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		student, instructor, err := s.resolvePeople(tx, req.StudentID, req.InstructorID)
		if err != nil {
			return err
		}
		e.StudentID, e.Student = student.ID, *student
		e.InstructorID, e.Instructor = instructor.ID, *instructor
		applyPhysicalEvaluationRequest(&e, req)
		if e.AnatomicalMarkers == nil {
			e.AnatomicalMarkers = datatypes.JSONSlice[model.AnatomicalMarker]{}
		}
		return tx.Omit(clause.Associations).Create(&e).Error
	})
	if err != nil {
		return nil, err
	}
	view := toPhysicalEvaluationView(e)
	return &view, nil
}

func (s *EvaluationService) GetPhysicalEvaluation(id uint) (*model.PhysicalEvaluationResponse, error) {
	var e model.PhysicalEvaluation
	err := s.db.Scopes(withPeopleRefs).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "PhysicalEvaluation", ID: id}
	}
	if err != nil {
		return nil, err
	}
	view := toPhysicalEvaluationView(e)
	return &view, nil
}

const newestFirst = "date DESC, id DESC"

func (s *EvaluationService) ListPhysicalEvaluations(p PageRequest) (Page[model.PhysicalEvaluationResponse], error) {
	return listRecords(s.db, nil, p, toPhysicalEvaluationView)
}

func (s *EvaluationService) ListPhysicalEvaluationsForStudent(studentID uint, p PageRequest) (Page[model.PhysicalEvaluationResponse], error) {
	if _, err := s.dir.FindStudentByID(s.db, studentID); err != nil {
		return Page[model.PhysicalEvaluationResponse]{}, err
	}
	return listRecords(s.db, &studentID, p, toPhysicalEvaluationView)
}

// listRecords pages over a clinical record table, optionally scoped to one student.
func listRecords[R any, V any](db *gorm.DB, studentID *uint, p PageRequest, view func(R) V) (Page[V], error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if studentID != nil {
			return q.Where("student_id = ?", *studentID)
		}
		return q
	}

	var total int64
	if err := db.Model(new(R)).Scopes(scope).Count(&total).Error; err != nil {
		return Page[V]{}, err
	}
	var rows []R
	if err := db.Scopes(scope, withPeopleRefs, p.Paginate).Order(newestFirst).Find(&rows).Error; err != nil {
		return Page[V]{}, err
	}
	return mapPage(rows, total, p, view), nil
}

// UpdatePhysicalEvaluation merges the supplied fields over the stored evaluation.
// Student and instructor are re-resolved when their ids are supplied.
func (s *EvaluationService) UpdatePhysicalEvaluation(id uint, req model.PhysicalEvaluationRequest) (*model.PhysicalEvaluationResponse, error) {
	var e model.PhysicalEvaluation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(withPeopleRefs).First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "PhysicalEvaluation", ID: id}
			}
			return err
		}
		if err := s.reassignPeople(tx, &e.StudentID, &e.Student, &e.InstructorID, &e.Instructor, req.StudentID, req.InstructorID); err != nil {
			return err
		}
		applyPhysicalEvaluationRequest(&e, req)
		return tx.Omit(clause.Associations).Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	view := toPhysicalEvaluationView(e)
	return &view, nil
}

// reassignPeople re-resolves whichever of the two references the payload supplies.
func (s *EvaluationService) reassignPeople(tx *gorm.DB, studentID *uint, student *model.Student, instructorID *uint, instructor *model.Instructor, newStudentID, newInstructorID uint) error {
	if newStudentID != 0 {
		found, err := s.dir.FindStudentByID(tx, newStudentID)
		if err != nil {
			return err
		}
		*studentID, *student = found.ID, *found
	}
	if newInstructorID != 0 {
		found, err := s.dir.FindInstructorByID(tx, newInstructorID)
		if err != nil {
			return err
		}
		*instructorID, *instructor = found.ID, *found
	}
	return nil
}

func (s *EvaluationService) DeletePhysicalEvaluation(id uint) error {
	return deleteByID[model.PhysicalEvaluation](s.db, "PhysicalEvaluation", id)
}

func deleteByID[T any](db *gorm.DB, entity string, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Entity: entity, ID: id}
		}
		return nil
	})
}
