package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserEvent is the raw behavioral signal log. Preference learning reads
// recent rows to detect repeated actions; everything else is append-only.
type UserEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action     string         `gorm:"not null;index" json:"action"`
	Resource   string         `gorm:"not null" json:"resource"`
	ResourceID uuid.UUID      `gorm:"type:uuid;index" json:"resource_id"`
	Metadata   datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (UserEvent) TableName() string { return "user_event" }

func (e *UserEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
