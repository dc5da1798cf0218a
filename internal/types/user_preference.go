package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserPreference is one learned behavioral signal, keyed by
// (user, category, preference_key). Confidence lives in [0,1] and rows
// below the 0.1 floor are pruned by the decay sweep.
type UserPreference struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_category_key,unique" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Category      string         `gorm:"not null;index:idx_user_category_key,unique" json:"category"`
	PreferenceKey string         `gorm:"not null;index:idx_user_category_key,unique;column:preference_key" json:"preference_key"`
	Value         datatypes.JSON `gorm:"column:value" json:"value"`
	Confidence    float64        `gorm:"not null;default:0.1" json:"confidence"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (UserPreference) TableName() string { return "user_preference" }

func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
