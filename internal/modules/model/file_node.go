package model

import (
	"time"

	"github.com/google/uuid"
)

// FileNode is one entry of a project's file tree, either a file or a folder.
// The tree is keyed by path strings: ParentPath, when set, must equal the
// Path of a folder node in the same project. The repo layer keeps that
// relation consistent; the database only enforces path uniqueness.
type FileNode struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_project_path,priority:1" json:"project_id"`
	Path       string    `gorm:"type:text;not null;uniqueIndex:idx_project_path,priority:2" json:"path"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	Content    string    `gorm:"type:text;not null;default:''" json:"content"`
	IsFolder   bool      `gorm:"not null;default:false" json:"is_folder"`
	ParentPath *string   `gorm:"type:text;index" json:"parent_path,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// FileNode <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (FileNode) TableName() string { return "file_nodes" }
