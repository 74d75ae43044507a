package models

import (
	"time"
)

const (
	ActionSignup       = "SIGNUP"
	ActionLogin        = "LOGIN"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionLogout       = "LOGOUT"
	ActionCreateRecipe = "CREATE_RECIPE"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`           // nil for failed logins on unknown usernames
	Action    string    `gorm:"size:50;not null" json:"action"` // one of the Action* constants
	EntityID  string    `gorm:"size:50" json:"entity_id"`       // username or recipe id
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
