package service

import (
	"errors"
	"time"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleFilter is an optional inclusive date range. An empty bound is open.
type ScheduleFilter struct {
	StartDate string
	EndDate   string
}

func (f ScheduleFilter) ranged() bool {
	return f.StartDate != "" || f.EndDate != ""
}

func (f ScheduleFilter) validate() error {
	var details []string
	if f.StartDate != "" {
		if _, err := util.ParseISODate(f.StartDate); err != nil {
			details = append(details, "startDate: must be a date in format YYYY-MM-DD")
		}
	}
	if f.EndDate != "" {
		if _, err := util.ParseISODate(f.EndDate); err != nil {
			details = append(details, "endDate: must be a date in format YYYY-MM-DD")
		}
	}
	if len(details) > 0 {
		return newValidationError(details...)
	}
	return nil
}

func (f ScheduleFilter) scope(db *gorm.DB) *gorm.DB {
	if f.StartDate != "" {
		db = db.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		db = db.Where("date <= ?", f.EndDate)
	}
	return db
}

const chronological = "date ASC, start_time ASC, id ASC"

// ScheduleService books classes against the registries.
type ScheduleService struct {
	db  *gorm.DB
	dir Directory
	now func() time.Time
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db, dir: GormDirectory{}, now: time.Now}
}

// normalizeSlot validates the time slot and returns both ends as HH:MM:SS.
func normalizeSlot(start, end string) (string, string, error) {
	s, err := util.NormalizeClock(start)
	if err != nil {
		return "", "", newValidationError("startTime: must be a time in format HH:MM or HH:MM:SS")
	}
	e, err := util.NormalizeClock(end)
	if err != nil {
		return "", "", newValidationError("endTime: must be a time in format HH:MM or HH:MM:SS")
	}
	if e <= s {
		return "", "", newValidationError("endTime: must be after startTime")
	}
	return s, e, nil
}

// resolveRefs loads the three registry references, failing on the first missing one.
func (s *ScheduleService) resolveRefs(tx *gorm.DB, sch *model.Schedule, req model.ScheduleRequest) error {
	student, err := s.dir.FindStudentByID(tx, req.StudentID)
	if err != nil {
		return err
	}
	instructor, err := s.dir.FindInstructorByID(tx, req.InstructorID)
	if err != nil {
		return err
	}
	classType, err := s.dir.FindClassTypeByID(tx, req.ClassTypeID)
	if err != nil {
		return err
	}
	sch.StudentID, sch.Student = student.ID, *student
	sch.InstructorID, sch.Instructor = instructor.ID, *instructor
	sch.ClassTypeID, sch.ClassType = classType.ID, *classType
	return nil
}

func applyScheduleRequest(sch *model.Schedule, req model.ScheduleRequest, start, end string) {
	sch.Date = req.Date
	sch.StartTime = start
	sch.EndTime = end
	sch.Status = req.Status
	sch.PaymentStatus = req.PaymentStatus
	sch.Price = req.Price
	sch.Room = req.Room
	sch.Notes = req.Notes
}

func (s *ScheduleService) Create(req model.ScheduleRequest) (*model.ScheduleResponse, error) {
	start, end, err := normalizeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	var sch model.Schedule
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.resolveRefs(tx, &sch, req); err != nil {
			return err
		}
		applyScheduleRequest(&sch, req, start, end)
		return tx.Omit(clause.Associations).Create(&sch).Error
	})
	if err != nil {
		return nil, err
	}
	view := toScheduleView(sch)
	return &view, nil
}

func (s *ScheduleService) Get(id uint) (*model.ScheduleResponse, error) {
	var sch model.Schedule
	err := s.db.Scopes(withScheduleRefs).First(&sch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Schedule", ID: id}
	}
	if err != nil {
		return nil, err
	}
	view := toScheduleView(sch)
	return &view, nil
}

// List pages over all bookings. With a date range the set is filtered first and
// ordered chronologically; without one it is ordered by id.
func (s *ScheduleService) List(filter ScheduleFilter, p PageRequest) (Page[model.ScheduleResponse], error) {
	if err := filter.validate(); err != nil {
		return Page[model.ScheduleResponse]{}, err
	}

	var total int64
	if err := s.db.Model(&model.Schedule{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return Page[model.ScheduleResponse]{}, err
	}

	order := "id ASC"
	if filter.ranged() {
		order = chronological
	}
	var rows []model.Schedule
	err := s.db.Scopes(filter.scope, withScheduleRefs, p.Paginate).Order(order).Find(&rows).Error
	if err != nil {
		return Page[model.ScheduleResponse]{}, err
	}
	return mapPage(rows, total, p, toScheduleView), nil
}

// Update overwrites every field of the booking and re-resolves all references.
func (s *ScheduleService) Update(id uint, req model.ScheduleRequest) (*model.ScheduleResponse, error) {
	start, end, err := normalizeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	var sch model.Schedule
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sch, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Schedule", ID: id}
			}
			return err
		}
		if err := s.resolveRefs(tx, &sch, req); err != nil {
			return err
		}
		applyScheduleRequest(&sch, req, start, end)
		return tx.Omit(clause.Associations).Save(&sch).Error
	})
	if err != nil {
		return nil, err
	}
	view := toScheduleView(sch)
	return &view, nil
}

func (s *ScheduleService) Delete(id uint) error {
	return deleteByID[model.Schedule](s.db, "Schedule", id)
}

// CountTodayClasses counts bookings dated today on the server clock.
func (s *ScheduleService) CountTodayClasses() (int64, error) {
	var count int64
	err := s.db.Model(&model.Schedule{}).Where("date = ?", util.Today(s.now())).Count(&count).Error
	return count, err
}

// FindNextClassForStudent returns the earliest booking dated after yesterday.
// Today's classes stay visible after their start time. The bool is false when
// there is none.
func (s *ScheduleService) FindNextClassForStudent(studentID uint) (*model.ScheduleResponse, bool, error) {
	yesterday := util.Today(s.now().AddDate(0, 0, -1))

	var sch model.Schedule
	err := s.db.Scopes(withScheduleRefs).
		Where("student_id = ? AND date > ?", studentID, yesterday).
		Order("date ASC, start_time ASC").
		Take(&sch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	view := toScheduleView(sch)
	return &view, true, nil
}

func (s *ScheduleService) listByOwner(column string, ownerID uint, p PageRequest) (Page[model.ScheduleResponse], error) {
	var total int64
	if err := s.db.Model(&model.Schedule{}).Where(column+" = ?", ownerID).Count(&total).Error; err != nil {
		return Page[model.ScheduleResponse]{}, err
	}
	var rows []model.Schedule
	err := s.db.Scopes(withScheduleRefs, p.Paginate).
		Where(column+" = ?", ownerID).
		Order(chronological).
		Find(&rows).Error
	if err != nil {
		return Page[model.ScheduleResponse]{}, err
	}
	return mapPage(rows, total, p, toScheduleView), nil
}

// ListForStudent pages over a student's bookings in chronological order.
func (s *ScheduleService) ListForStudent(studentID uint, p PageRequest) (Page[model.ScheduleResponse], error) {
	if _, err := s.dir.FindStudentByID(s.db, studentID); err != nil {
		return Page[model.ScheduleResponse]{}, err
	}
	return s.listByOwner("student_id", studentID, p)
}

// ListForInstructor pages over an instructor's bookings in chronological order.
func (s *ScheduleService) ListForInstructor(instructorID uint, p PageRequest) (Page[model.ScheduleResponse], error) {
	if _, err := s.dir.FindInstructorByID(s.db, instructorID); err != nil {
		return Page[model.ScheduleResponse]{}, err
	}
	return s.listByOwner("instructor_id", instructorID, p)
}
