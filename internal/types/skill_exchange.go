package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ExchangeStatusPending   = "pending"
	ExchangeStatusAccepted  = "accepted"
	ExchangeStatusCompleted = "completed"
	ExchangeStatusCancelled = "cancelled"
)

type SkillExchange struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SkillID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"skill_id"`
	Skill       *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	ProviderID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	Provider    *User          `gorm:"foreignKey:ProviderID;references:ID" json:"provider,omitempty"`
	RequesterID uuid.UUID      `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   *User          `gorm:"foreignKey:RequesterID;references:ID" json:"requester,omitempty"`
	Status      string         `gorm:"not null;default:'pending';index" json:"status"`
	Message     string         `gorm:"column:message" json:"message"`
	Rating      float64        `gorm:"column:rating" json:"rating"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SkillExchange) TableName() string { return "skill_exchange" }

func (e *SkillExchange) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
