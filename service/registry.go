package service

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"gorm.io/gorm"
)

// RegistryService is validated CRUD over students, instructors and class types.
type RegistryService struct {
	db     *gorm.DB
	dir    Directory
	hasher util.PasswordHasher
	files  util.FileStore
}

func NewRegistryService(db *gorm.DB, hasher util.PasswordHasher, files util.FileStore) *RegistryService {
	return &RegistryService{db: db, dir: GormDirectory{}, hasher: hasher, files: files}
}

// referenceCounts reports how many bookings and clinical records point at column = id.
func referenceCounts(tx *gorm.DB, column string, id uint, tables ...interface{}) (int64, error) {
	var total int64
	for _, table := range tables {
		var n int64
		if err := tx.Model(table).Where(column+" = ?", id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// conflictOnDuplicate turns a unique constraint failure into a ConflictError.
func conflictOnDuplicate(err error, msg string) error {
	if util.IsDuplicateKey(err) {
		return &ConflictError{Message: msg}
	}
	return err
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func normalizeWorkingHours(in []model.WorkingHoursRequest) ([]model.WorkingHours, error) {
	out := make([]model.WorkingHours, 0, len(in))
	for i, wh := range in {
		start, end, err := normalizeSlot(wh.StartTime, wh.EndTime)
		if err != nil {
			ve := err.(*ValidationError)
			for j, d := range ve.Details {
				ve.Details[j] = fmt.Sprintf("workingHours[%d].%s", i, d)
			}
			return nil, ve
		}
		available := true
		if wh.IsAvailable != nil {
			available = *wh.IsAvailable
		}
		out = append(out, model.WorkingHours{
			DayOfWeek:   wh.DayOfWeek,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: available,
		})
	}
	return out, nil
}
