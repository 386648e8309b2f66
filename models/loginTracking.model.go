package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records each successful login for audit
type LoginTracking struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
	IsDeleted bool      `gorm:"default:false"`
}
