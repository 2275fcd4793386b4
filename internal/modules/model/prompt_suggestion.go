package model

import (
	"time"

	"github.com/google/uuid"
)

// PromptSuggestion is a static catalog entry shown as a starting-point
// prompt. The catalog is seeded at boot and read-only to the core.
type PromptSuggestion struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null;uniqueIndex" json:"text"`
	Category *string   `gorm:"type:text" json:"category,omitempty"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PromptSuggestion) TableName() string { return "prompt_suggestions" }
