package service

import (
	"fmt"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func applyClassTypeRequest(c *model.ClassType, req model.ClassTypeRequest) {
	c.Name = util.NormalizeName(req.Name)
	c.Description = req.Description
	c.Duration = req.Duration
	if req.Price != nil {
		c.Price = *req.Price
	}
	c.Capacity = req.Capacity
	c.Intensity = req.Intensity
	c.Color = req.Color
	c.Equipment = datatypes.NewJSONSlice(nonNil(req.Equipment))
}

func (r *RegistryService) classTypeNameTaken(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&model.ClassType{}).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Message: fmt.Sprintf("Class type already exists: %s", name)}
	}
	return nil
}

func (r *RegistryService) CreateClassType(req model.ClassTypeRequest) (*model.ClassType, error) {
	var c model.ClassType
	applyClassTypeRequest(&c, req)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.classTypeNameTaken(tx, c.Name, 0); err != nil {
			return err
		}
		return conflictOnDuplicate(tx.Create(&c).Error, "Class type already exists")
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *RegistryService) GetClassType(id uint) (*model.ClassType, error) {
	return r.dir.FindClassTypeByID(r.db, id)
}

func (r *RegistryService) ListClassTypes(p PageRequest) (Page[model.ClassType], error) {
	var total int64
	if err := r.db.Model(&model.ClassType{}).Count(&total).Error; err != nil {
		return Page[model.ClassType]{}, err
	}
	var rows []model.ClassType
	if err := r.db.Scopes(p.Paginate).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return Page[model.ClassType]{}, err
	}
	return mapPage(rows, total, p, func(c model.ClassType) model.ClassType { return c }), nil
}

func (r *RegistryService) UpdateClassType(id uint, req model.ClassTypeRequest) (*model.ClassType, error) {
	var c model.ClassType
	err := r.db.Transaction(func(tx *gorm.DB) error {
		found, err := r.dir.FindClassTypeByID(tx, id)
		if err != nil {
			return err
		}
		c = *found
		applyClassTypeRequest(&c, req)
		if err := r.classTypeNameTaken(tx, c.Name, id); err != nil {
			return err
		}
		return conflictOnDuplicate(tx.Save(&c).Error, "Class type already exists")
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteClassType removes a catalog entry no booking refers to.
func (r *RegistryService) DeleteClassType(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.dir.FindClassTypeByID(tx, id); err != nil {
			return err
		}
		refs, err := referenceCounts(tx, "class_type_id", id, &model.Schedule{})
		if err != nil {
			return err
		}
		if refs > 0 {
			return &ConflictError{Message: fmt.Sprintf("ClassType %d is referenced by %d schedules", id, refs)}
		}
		return tx.Delete(&model.ClassType{}, id).Error
	})
}
