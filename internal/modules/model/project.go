package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	Prompt        string    `gorm:"type:text;not null" json:"prompt"`
	Slug          string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	IsDeployed    bool      `gorm:"not null;default:false" json:"is_deployed"`
	DeploymentURL *string   `gorm:"type:text" json:"deployment_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Project <-> User
	Owner *User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project exclusively owns its nodes, chat log and deployment history.
	FileNodes    []FileNode    `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	ChatMessages []ChatMessage `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Deployments  []Deployment  `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }
