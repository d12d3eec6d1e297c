package service

import (
	"time"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"gorm.io/gorm"
)

// DashboardStats is the studio overview shown on the landing page.
type DashboardStats struct {
	TotalStudents    int64   `json:"totalStudents" example:"42"`
	ActiveStudents   int64   `json:"activeStudents" example:"37"`
	TotalInstructors int64   `json:"totalInstructors" example:"5"`
	TodayClasses     int64   `json:"todayClasses" example:"12"`
	MonthRevenue     float64 `json:"monthRevenue" example:"18200"`
}

// DashboardService aggregates counts over the registries and bookings.
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

func (d *DashboardService) Stats() (*DashboardStats, error) {
	var stats DashboardStats
	if err := d.db.Model(&model.Student{}).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := d.db.Model(&model.Student{}).Where("status = ?", model.StudentStatusActive).Count(&stats.ActiveStudents).Error; err != nil {
		return nil, err
	}
	if err := d.db.Model(&model.Instructor{}).Count(&stats.TotalInstructors).Error; err != nil {
		return nil, err
	}

	schedules := &ScheduleService{db: d.db, dir: GormDirectory{}, now: d.now}
	today, err := schedules.CountTodayClasses()
	if err != nil {
		return nil, err
	}
	stats.TodayClasses = today

	first, last := util.MonthBounds(d.now())
	err = d.db.Model(&model.Schedule{}).
		Select("COALESCE(SUM(price), 0)").
		Where("payment_status = ? AND date BETWEEN ? AND ?", model.PaymentStatusPaid, first, last).
		Row().Scan(&stats.MonthRevenue)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
