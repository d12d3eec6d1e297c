package service

import (
	"errors"

	"github.com/ariebrainware/pilates-studio/model"
	"gorm.io/gorm"
)

// Directory resolves registry references by id. Lookups run on the caller's
// transaction and never return a nil entity without an error.
type Directory interface {
	FindStudentByID(tx *gorm.DB, id uint) (*model.Student, error)
	FindInstructorByID(tx *gorm.DB, id uint) (*model.Instructor, error)
	FindClassTypeByID(tx *gorm.DB, id uint) (*model.ClassType, error)
	InstructorEmailExists(tx *gorm.DB, email string) (bool, error)
}

// GormDirectory is the Directory backed by the registry tables.
type GormDirectory struct{}

func findByID[T any](tx *gorm.DB, entity string, id uint) (*T, error) {
	var v T
	err := tx.First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: entity, ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (GormDirectory) FindStudentByID(tx *gorm.DB, id uint) (*model.Student, error) {
	return findByID[model.Student](tx, "Student", id)
}

func (GormDirectory) FindInstructorByID(tx *gorm.DB, id uint) (*model.Instructor, error) {
	return findByID[model.Instructor](tx, "Instructor", id)
}

func (GormDirectory) FindClassTypeByID(tx *gorm.DB, id uint) (*model.ClassType, error) {
	return findByID[model.ClassType](tx, "ClassType", id)
}

func (GormDirectory) InstructorEmailExists(tx *gorm.DB, email string) (bool, error) {
	var count int64
	err := tx.Model(&model.Instructor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
