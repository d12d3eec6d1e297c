package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/pilates-studio/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func withWorkingHours(db *gorm.DB) *gorm.DB {
	return db.Preload("WorkingHours", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func validateInstructorRequest(req model.InstructorRequest, creating bool) error {
	var details []string
	if creating && req.Password == "" {
		details = append(details, "password: must not be blank")
	}
	if strings.TrimSpace(req.EmergencyContact) != "" && strings.TrimSpace(req.EmergencyPhone) == "" {
		details = append(details, "emergencyPhone: is required when emergencyContact is provided")
	}
	if len(details) > 0 {
		return newValidationError(details...)
	}
	return nil
}

func applyInstructorRequest(i *model.Instructor, req model.InstructorRequest) {
	i.Name = req.Name
	i.Email = strings.ToLower(strings.TrimSpace(req.Email))
	i.Role = req.Role
	i.Phone = req.Phone
	i.Sex = req.Sex
	i.BirthDate = optionalString(req.BirthDate)
	i.Address = req.Address
	i.EmergencyContact = req.EmergencyContact
	i.EmergencyPhone = req.EmergencyPhone
	i.Specialties = datatypes.NewJSONSlice(nonNil(req.Specialties))
	i.Certifications = datatypes.NewJSONSlice(nonNil(req.Certifications))
	i.Bio = req.Bio
	i.Experience = req.Experience
	i.Status = req.Status
	i.HireDate = optionalString(req.HireDate)
	i.HourlyRate = req.HourlyRate
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func emailConflict(email string) error {
	return &ConflictError{Message: fmt.Sprintf("Email already in use: %s", email)}
}

func (r *RegistryService) CreateInstructor(req model.InstructorRequest) (*model.Instructor, error) {
	if err := validateInstructorRequest(req, true); err != nil {
		return nil, err
	}
	hours, err := normalizeWorkingHours(req.WorkingHours)
	if err != nil {
		return nil, err
	}

	var i model.Instructor
	applyInstructorRequest(&i, req)
	i.WorkingHours = hours

	err = r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := r.dir.InstructorEmailExists(tx, i.Email)
		if err != nil {
			return err
		}
		if exists {
			return emailConflict(i.Email)
		}
		hash, err := r.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		i.Password = hash
		return conflictOnDuplicate(tx.Create(&i).Error, "Email already in use")
	})
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *RegistryService) GetInstructor(id uint) (*model.Instructor, error) {
	var i model.Instructor
	err := r.db.Scopes(withWorkingHours).First(&i, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Instructor", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *RegistryService) ListInstructors(p PageRequest) (Page[model.Instructor], error) {
	var total int64
	if err := r.db.Model(&model.Instructor{}).Count(&total).Error; err != nil {
		return Page[model.Instructor]{}, err
	}
	var rows []model.Instructor
	if err := r.db.Scopes(withWorkingHours, p.Paginate).Order("id ASC").Find(&rows).Error; err != nil {
		return Page[model.Instructor]{}, err
	}
	return mapPage(rows, total, p, func(i model.Instructor) model.Instructor { return i }), nil
}

// UpdateInstructor overwrites the profile. Email uniqueness is re-checked only
// when it changes, the password is re-hashed only when supplied, and working
// hours are replaced only when the payload carries them.
func (r *RegistryService) UpdateInstructor(id uint, req model.InstructorRequest) (*model.Instructor, error) {
	if err := validateInstructorRequest(req, false); err != nil {
		return nil, err
	}
	var hours []model.WorkingHours
	if req.WorkingHours != nil {
		var err error
		if hours, err = normalizeWorkingHours(req.WorkingHours); err != nil {
			return nil, err
		}
	}

	var i model.Instructor
	err := r.db.Transaction(func(tx *gorm.DB) error {
		found, err := r.dir.FindInstructorByID(tx, id)
		if err != nil {
			return err
		}
		i = *found
		previousEmail := i.Email
		applyInstructorRequest(&i, req)

		if i.Email != previousEmail {
			exists, err := r.dir.InstructorEmailExists(tx, i.Email)
			if err != nil {
				return err
			}
			if exists {
				return emailConflict(i.Email)
			}
		}
		if req.Password != "" {
			hash, err := r.hasher.Hash(req.Password)
			if err != nil {
				return err
			}
			i.Password = hash
		}
		if err := tx.Omit(clause.Associations).Save(&i).Error; err != nil {
			return conflictOnDuplicate(err, "Email already in use")
		}
		if req.WorkingHours != nil {
			if err := replaceWorkingHours(tx, id, hours); err != nil {
				return err
			}
		}
		return tx.Where("instructor_id = ?", id).Order("id ASC").Find(&i.WorkingHours).Error
	})
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// DeleteInstructor removes the instructor and its working hours. An instructor
// still referenced by bookings or clinical records is a conflict.
func (r *RegistryService) DeleteInstructor(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.dir.FindInstructorByID(tx, id); err != nil {
			return err
		}
		refs, err := referenceCounts(tx, "instructor_id", id, &model.Schedule{}, &model.PhysicalEvaluation{}, &model.EvolutionRecord{})
		if err != nil {
			return err
		}
		if refs > 0 {
			return &ConflictError{Message: fmt.Sprintf("Instructor %d is referenced by %d schedules or clinical records", id, refs)}
		}
		if err := tx.Where("instructor_id = ?", id).Delete(&model.WorkingHours{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Instructor{}, id).Error
	})
}

// replaceWorkingHours discards every stored window of the instructor and inserts hours.
func replaceWorkingHours(tx *gorm.DB, instructorID uint, hours []model.WorkingHours) error {
	if err := tx.Where("instructor_id = ?", instructorID).Delete(&model.WorkingHours{}).Error; err != nil {
		return err
	}
	if len(hours) == 0 {
		return nil
	}
	for i := range hours {
		hours[i].ID = 0
		hours[i].InstructorID = instructorID
	}
	return tx.Create(&hours).Error
}

func (r *RegistryService) ListWorkingHours(instructorID uint) ([]model.WorkingHours, error) {
	if _, err := r.dir.FindInstructorByID(r.db, instructorID); err != nil {
		return nil, err
	}
	hours := []model.WorkingHours{}
	err := r.db.Where("instructor_id = ?", instructorID).Order("id ASC").Find(&hours).Error
	return hours, err
}

// ReplaceWorkingHours swaps the whole availability list of an instructor.
func (r *RegistryService) ReplaceWorkingHours(instructorID uint, req []model.WorkingHoursRequest) ([]model.WorkingHours, error) {
	hours, err := normalizeWorkingHours(req)
	if err != nil {
		return nil, err
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.dir.FindInstructorByID(tx, instructorID); err != nil {
			return err
		}
		return replaceWorkingHours(tx, instructorID, hours)
	})
	if err != nil {
		return nil, err
	}
	return hours, nil
}
