package service

import (
	"errors"

	"github.com/ariebrainware/pilates-studio/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyEvolutionRecordRequest merges the supplied fields of req into r.
// A nil list keeps the stored one; an empty list clears it.
func applyEvolutionRecordRequest(r *model.EvolutionRecord, req model.EvolutionRecordRequest) {
	if req.Date != "" {
		r.Date = req.Date
	}
	assign(&r.SessionNumber, req.SessionNumber)
	assign(&r.Focus, req.Focus)
	if req.ExercisesPerformed != nil {
		r.ExercisesPerformed = datatypes.NewJSONSlice(req.ExercisesPerformed)
	}
	assign(&r.ProgressNotes, req.ProgressNotes)
	assign(&r.DifficultiesObserved, req.DifficultiesObserved)
	assign(&r.Improvements, req.Improvements)
	assign(&r.NextSessionGoals, req.NextSessionGoals)
	assign(&r.OverallRating, req.OverallRating)
	assign(&r.PainLevel, req.PainLevel)
	assign(&r.MobilityLevel, req.MobilityLevel)
	assign(&r.StrengthLevel, req.StrengthLevel)
	assign(&r.BalanceLevel, req.BalanceLevel)
	assign(&r.EnduranceLevel, req.EnduranceLevel)
	assign(&r.Observations, req.Observations)
	if req.Equipment != nil {
		r.Equipment = datatypes.NewJSONSlice(req.Equipment)
	}
	assign(&r.Duration, req.Duration)
}

func (s *EvaluationService) CreateEvolutionRecord(req model.EvolutionRecordRequest) (*model.EvolutionRecordResponse, error) {
	var r model.EvolutionRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		student, instructor, err := s.resolvePeople(tx, req.StudentID, req.InstructorID)
		if err != nil {
			return err
		}
		r.StudentID, r.Student = student.ID, *student
		r.InstructorID, r.Instructor = instructor.ID, *instructor
		r.ExercisesPerformed = datatypes.JSONSlice[string]{}
		r.Equipment = datatypes.JSONSlice[string]{}
		applyEvolutionRecordRequest(&r, req)
		return tx.Omit(clause.Associations).Create(&r).Error
	})
	if err != nil {
		return nil, err
	}
	view := toEvolutionRecordView(r)
	return &view, nil
}

func (s *EvaluationService) GetEvolutionRecord(id uint) (*model.EvolutionRecordResponse, error) {
	var r model.EvolutionRecord
	err := s.db.Scopes(withPeopleRefs).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "EvolutionRecord", ID: id}
	}
	if err != nil {
		return nil, err
	}
	view := toEvolutionRecordView(r)
	return &view, nil
}

func (s *EvaluationService) ListEvolutionRecords(p PageRequest) (Page[model.EvolutionRecordResponse], error) {
	return listRecords(s.db, nil, p, toEvolutionRecordView)
}

func (s *EvaluationService) ListEvolutionRecordsForStudent(studentID uint, p PageRequest) (Page[model.EvolutionRecordResponse], error) {
	if _, err := s.dir.FindStudentByID(s.db, studentID); err != nil {
		return Page[model.EvolutionRecordResponse]{}, err
	}
	return listRecords(s.db, &studentID, p, toEvolutionRecordView)
}

func (s *EvaluationService) UpdateEvolutionRecord(id uint, req model.EvolutionRecordRequest) (*model.EvolutionRecordResponse, error) {
	var r model.EvolutionRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(withPeopleRefs).First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "EvolutionRecord", ID: id}
			}
			return err
		}
		if err := s.reassignPeople(tx, &r.StudentID, &r.Student, &r.InstructorID, &r.Instructor, req.StudentID, req.InstructorID); err != nil {
			return err
		}
		applyEvolutionRecordRequest(&r, req)
		return tx.Omit(clause.Associations).Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	view := toEvolutionRecordView(r)
	return &view, nil
}

func (s *EvaluationService) DeleteEvolutionRecord(id uint) error {
	return deleteByID[model.EvolutionRecord](s.db, "EvolutionRecord", id)
}
