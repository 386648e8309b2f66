package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP stores one-time codes for email verification and password reset
type OTP struct {
	gorm.Model
	Email     string    `json:"email" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Purpose   string    `json:"purpose" gorm:"default:'VERIFY_EMAIL'"` // VERIFY_EMAIL, RESET_PASSWORD
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
	IsDeleted bool      `gorm:"default:false"`
}
