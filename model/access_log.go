package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AccessLog is a persisted record of one API call, kept as an audit trail of
// who touched clinical data and when.
type AccessLog struct {
	gorm.Model
	RequestID string `json:"request_id" gorm:"column:request_id;type:varchar(64);index"`
	Subject   string `json:"subject" gorm:"column:subject;type:varchar(191);index"`
	Method    string `json:"method" gorm:"column:method;type:varchar(10)"`
	Path      string `json:"path" gorm:"column:path;type:varchar(255);index"`
	Status    int    `json:"status" gorm:"column:status"`
	IP        string `json:"ip" gorm:"column:ip;type:varchar(45)"`
	// Location stores city and country in the format "City/Country" when available.
	Location  string         `json:"location" gorm:"column:location;type:varchar(255)"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Details   datatypes.JSON `json:"details" gorm:"column:details"`
}
