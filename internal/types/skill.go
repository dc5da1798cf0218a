package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	ModeOnline   = "online"
	ModeInPerson = "in-person"
	ModeHybrid   = "hybrid"
)

type Skill struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title           string                      `gorm:"not null;column:title" json:"title"`
	Description     string                      `gorm:"column:description" json:"description"`
	Category        string                      `gorm:"not null;index;column:category" json:"category"`
	Subcategory     string                      `gorm:"column:subcategory" json:"subcategory"`
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Difficulty      string                      `gorm:"column:difficulty" json:"difficulty"`
	Mode            string                      `gorm:"column:mode" json:"mode"`
	DurationMinutes int                         `gorm:"column:duration_minutes" json:"duration_minutes"`
	Price           float64                     `gorm:"column:price" json:"price"`
	Rating          float64                     `gorm:"not null;default:0" json:"rating"`
	ReviewCount     int                         `gorm:"not null;default:0" json:"review_count"`
	IsVerified      bool                        `gorm:"not null;default:false" json:"is_verified"`
	ViewCount       int                         `gorm:"not null;default:0" json:"view_count"`
	RequestCount    int                         `gorm:"not null;default:0" json:"request_count"`
	IsActive        bool                        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

func (Skill) TableName() string { return "skill" }

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
