package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SkillID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"skill_id"`
	Skill      *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	ReviewerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	Reviewer   *User          `gorm:"foreignKey:ReviewerID;references:ID" json:"reviewer,omitempty"`
	Rating     float64        `gorm:"not null" json:"rating"`
	Comment    string         `gorm:"column:comment" json:"comment"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Review) TableName() string { return "review" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
