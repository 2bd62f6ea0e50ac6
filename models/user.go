package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Username    string         `gorm:"uniqueIndex" json:"username"`
	FullName    string         `json:"full_name"`
	ProfilePic  string         `json:"profile_pic"`
	GoogleID    string         `gorm:"uniqueIndex" json:"google_id,omitempty"`
	Provider    string         `gorm:"default:'google'" json:"provider"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`

	// IsPremium is written by billing when a subscription activates and
	// read once at session issuance; requests trust the session claim.
	IsPremium    bool       `gorm:"default:false" json:"is_premium"`
	PremiumSince *time.Time `json:"premium_since,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Username == "" && u.Email != "" {
		u.Username = strings.SplitN(u.Email, "@", 2)[0]
	}
	return nil
}
