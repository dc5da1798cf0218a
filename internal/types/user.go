package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password        string         `gorm:"not null;column:password" json:"-"`
	Name            string         `gorm:"not null;column:name" json:"name"`
	Bio             string         `gorm:"column:bio" json:"bio"`
	Location        string         `gorm:"column:location" json:"location"`
	AvatarURL       string         `gorm:"column:avatar_url" json:"avatar_url"`
	PersonalityType string         `gorm:"column:personality_type" json:"personality_type"`
	Reputation      float64        `gorm:"not null;default:50" json:"reputation"`
	Level           int            `gorm:"not null;default:1" json:"level"`
	LastActivity    time.Time      `gorm:"column:last_activity" json:"last_activity"`
	Skills          []Skill        `gorm:"foreignKey:UserID" json:"skills,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
