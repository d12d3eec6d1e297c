package service

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func withDocuments(db *gorm.DB) *gorm.DB {
	return db.Preload("Documents", func(db *gorm.DB) *gorm.DB {
		return db.Order("upload_date ASC, id ASC")
	})
}

func applyStudentRequest(s *model.Student, req model.StudentRequest) {
	s.Name = req.Name
	s.Email = optionalString(req.Email)
	s.Phone = req.Phone
	s.BirthDate = optionalString(req.BirthDate)
	s.Sex = req.Sex
	s.Address = req.Address
	s.EmergencyContact = req.EmergencyContact
	s.EmergencyPhone = req.EmergencyPhone
	s.Status = req.Status
	s.Plan = req.Plan
	if req.Anamnesis != nil {
		s.Anamnesis = *req.Anamnesis
	}
}

func (r *RegistryService) studentEmailTaken(tx *gorm.DB, email *string, exceptID uint) (bool, error) {
	if email == nil {
		return false, nil
	}
	var count int64
	err := tx.Model(&model.Student{}).Where("email = ? AND id <> ?", *email, exceptID).Count(&count).Error
	return count > 0, err
}

func (r *RegistryService) CreateStudent(req model.StudentRequest) (*model.Student, error) {
	var s model.Student
	applyStudentRequest(&s, req)
	s.Documents = []model.Document{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		taken, err := r.studentEmailTaken(tx, s.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Message: fmt.Sprintf("Email already in use: %s", *s.Email)}
		}
		return conflictOnDuplicate(tx.Omit(clause.Associations).Create(&s).Error, "Email already in use")
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RegistryService) GetStudent(id uint) (*model.Student, error) {
	var s model.Student
	err := r.db.Scopes(withDocuments).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Student", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RegistryService) ListStudents(p PageRequest) (Page[model.Student], error) {
	var total int64
	if err := r.db.Model(&model.Student{}).Count(&total).Error; err != nil {
		return Page[model.Student]{}, err
	}
	var rows []model.Student
	if err := r.db.Scopes(withDocuments, p.Paginate).Order("id ASC").Find(&rows).Error; err != nil {
		return Page[model.Student]{}, err
	}
	return mapPage(rows, total, p, func(s model.Student) model.Student { return s }), nil
}

// UpdateStudent overwrites the profile. The stored anamnesis is kept when the
// payload omits it.
func (r *RegistryService) UpdateStudent(id uint, req model.StudentRequest) (*model.Student, error) {
	var s model.Student
	err := r.db.Transaction(func(tx *gorm.DB) error {
		found, err := r.dir.FindStudentByID(tx, id)
		if err != nil {
			return err
		}
		s = *found
		applyStudentRequest(&s, req)

		taken, err := r.studentEmailTaken(tx, s.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Message: fmt.Sprintf("Email already in use: %s", *s.Email)}
		}
		if err := tx.Omit(clause.Associations).Save(&s).Error; err != nil {
			return conflictOnDuplicate(err, "Email already in use")
		}
		return tx.Where("student_id = ?", id).Order("upload_date ASC, id ASC").Find(&s.Documents).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteStudent removes the student and its documents. A student still
// referenced by bookings or clinical records is a conflict.
func (r *RegistryService) DeleteStudent(id uint) error {
	var paths []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.dir.FindStudentByID(tx, id); err != nil {
			return err
		}
		refs, err := referenceCounts(tx, "student_id", id, &model.Schedule{}, &model.PhysicalEvaluation{}, &model.EvolutionRecord{})
		if err != nil {
			return err
		}
		if refs > 0 {
			return &ConflictError{Message: fmt.Sprintf("Student %d is referenced by %d schedules or clinical records", id, refs)}
		}
		if err := tx.Model(&model.Document{}).Where("student_id = ?", id).Pluck("file_path", &paths).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Student{}, id).Error
	})
	if err != nil {
		return err
	}
	if r.files != nil {
		for _, p := range paths {
			if err := r.files.Remove(p); err != nil {
				util.LogCleanupError(fmt.Sprintf("remove document %s of student %d", p, id), err)
			}
		}
	}
	return nil
}

// UploadDocument stores the file through the FileStore and records its metadata.
func (r *RegistryService) UploadDocument(studentID uint, fileName, fileType string, content io.Reader) (*model.Document, error) {
	if r.files == nil {
		return nil, errors.New("file storage is not configured")
	}
	if _, err := r.dir.FindStudentByID(r.db, studentID); err != nil {
		return nil, err
	}

	path, size, err := r.files.Save(fmt.Sprintf("student-%d", studentID), fileName, content)
	if err != nil {
		return nil, err
	}
	doc := model.Document{
		StudentID:  studentID,
		FileName:   fileName,
		FileType:   fileType,
		Size:       size,
		UploadDate: time.Now(),
		FilePath:   path,
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.dir.FindStudentByID(tx, studentID); err != nil {
			return err
		}
		return tx.Create(&doc).Error
	})
	if err != nil {
		_ = r.files.Remove(path)
		return nil, err
	}
	return &doc, nil
}

func (r *RegistryService) ListDocuments(studentID uint) ([]model.Document, error) {
	if _, err := r.dir.FindStudentByID(r.db, studentID); err != nil {
		return nil, err
	}
	docs := []model.Document{}
	err := r.db.Where("student_id = ?", studentID).Order("upload_date ASC, id ASC").Find(&docs).Error
	return docs, err
}

// GetDocument returns one document of a student, including its storage path.
func (r *RegistryService) GetDocument(studentID, documentID uint) (*model.Document, error) {
	var doc model.Document
	err := r.db.Where("student_id = ?", studentID).First(&doc, documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Document", ID: documentID}
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
