package model

import (
	"time"

	"github.com/google/uuid"
)

// DeploymentStatus values form the simulated build pipeline. Transitions are
// driven by the deploy worker, the core only validates the enum.
type DeploymentStatus string

const (
	DeploymentPending  DeploymentStatus = "pending"
	DeploymentBuilding DeploymentStatus = "building"
	DeploymentDeployed DeploymentStatus = "deployed"
	DeploymentFailed   DeploymentStatus = "failed"
)

// Deployment is one entry of a project's append-only deployment history.
type Deployment struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"project_id"`
	Status        DeploymentStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	DeploymentURL *string          `gorm:"type:text" json:"deployment_url,omitempty"`
	BuildLogs     *string          `gorm:"type:text" json:"build_logs,omitempty"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Deployment <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Deployment) TableName() string { return "deployments" }
