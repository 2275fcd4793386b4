package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage is one entry of a project's chat transcript. The log is
// append-only: there is no update or delete path.
type ChatMessage struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Response     *string   `gorm:"type:text" json:"response,omitempty"`
	IsAIResponse bool      `gorm:"not null;default:false" json:"is_ai_response"`

	// Meta carries structured context for generated entries, e.g. the
	// archetype and node count of a generation run. Nil for plain chat.
	Meta datatypes.JSONMap `gorm:"type:jsonb" json:"meta,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// ChatMessage <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
