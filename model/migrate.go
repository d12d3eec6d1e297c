package model

import (
	"fmt"

	"gorm.io/gorm"
)

// AllModels lists every table owned by the application, parents first.
var AllModels = []interface{}{
	&Student{},
	&Document{},
	&Instructor{},
	&WorkingHours{},
	&ClassType{},
	&Schedule{},
	&PhysicalEvaluation{},
	&EvolutionRecord{},
	&AccessLog{},
}

// Migrate creates or updates the schema for AllModels.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels...)
}

// SeedClassTypes inserts the default apparatus catalog when the names are missing.
func SeedClassTypes(db *gorm.DB) error {
	classTypes := []ClassType{
		{Name: "Reformer", Duration: 55, Price: 120, Capacity: 3, Intensity: IntensityMedium, Color: "#8b5cf6", Equipment: []string{"REFORMER"}},
		{Name: "Chair", Duration: 50, Price: 100, Capacity: 3, Intensity: IntensityHigh, Color: "#f59e0b", Equipment: []string{"CHAIR"}},
		{Name: "Cadillac", Duration: 55, Price: 130, Capacity: 2, Intensity: IntensityMedium, Color: "#10b981", Equipment: []string{"CADILLAC"}},
		{Name: "Barrel", Duration: 50, Price: 100, Capacity: 3, Intensity: IntensityLow, Color: "#3b82f6", Equipment: []string{"BARREL"}},
		{Name: "Mat", Duration: 50, Price: 60, Capacity: 8, Intensity: IntensityLow, Color: "#ec4899"},
	}

	for _, classType := range classTypes {
		var existing ClassType
		err := db.Where("name = ?", classType.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&classType).Error; err != nil {
			return fmt.Errorf("failed to seed class type %s: %w", classType.Name, err)
		}
	}
	return nil
}
