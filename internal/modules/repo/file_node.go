package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/pkg/treepath"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileNodeUpdate is an explicit partial-update carrier for file nodes. A
// changed Path recomputes the node's own parent_path; descendant paths are
// NOT rewritten when a folder is renamed or moved.
type FileNodeUpdate struct {
	Name    *string
	Content *string
	Path    *string
}

type FileNodeRepo interface {
	// Create inserts a node after verifying the owning project exists.
	Create(ctx context.Context, n *model.FileNode) error
	// CreateAll inserts nodes in the given order inside one transaction,
	// so parent folders are visible before their children and a failed
	// insert rolls the whole batch back.
	CreateAll(ctx context.Context, projectID uuid.UUID, nodes []*model.FileNode) error
	GetByID(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.FileNode, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.FileNode, error)
	Update(ctx context.Context, id uuid.UUID, upd FileNodeUpdate) (*model.FileNode, error)
	// Delete removes the node, and for folders its entire descendant
	// subtree, atomically. Returns false when no node matches in that
	// project.
	Delete(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (bool, error)
}

type fileNodeRepo struct{ db *gorm.DB }

func NewFileNodeRepo(db *gorm.DB) FileNodeRepo {
	return &fileNodeRepo{db: db}
}

func (r *fileNodeRepo) projectExists(tx *gorm.DB, projectID uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("project %s: %w", projectID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *fileNodeRepo) Create(ctx context.Context, n *model.FileNode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.projectExists(tx, n.ProjectID); err != nil {
			return err
		}
		return tx.Create(n).Error
	})
}

func (r *fileNodeRepo) CreateAll(ctx context.Context, projectID uuid.UUID, nodes []*model.FileNode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.projectExists(tx, projectID); err != nil {
			return err
		}
		// Insert one by one in emitted order; parents precede children.
		for _, n := range nodes {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *fileNodeRepo) GetByID(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.FileNode, error) {
	var n model.FileNode
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *fileNodeRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.FileNode, error) {
	var nodes []*model.FileNode
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&nodes).Error
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *fileNodeRepo) Update(ctx context.Context, id uuid.UUID, upd FileNodeUpdate) (*model.FileNode, error) {
	cols := map[string]interface{}{}
	if upd.Name != nil {
		cols["name"] = *upd.Name
	}
	if upd.Content != nil {
		cols["content"] = *upd.Content
	}
	if upd.Path != nil {
		path := treepath.Normalize(*upd.Path)
		cols["path"] = path
		cols["parent_path"] = treepath.ParentPath(path)
	}

	var n model.FileNode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cols) > 0 {
			res := tx.Model(&model.FileNode{}).Where("id = ?", id).Updates(cols)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Where("id = ?", id).First(&n).Error
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *fileNodeRepo) Delete(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (bool, error) {
	var node model.FileNode
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Two-phase delete as one transaction: descendants first, then the
	// folder itself. A crash mid-delete can never leave a partial subtree.
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if node.IsFolder {
			prefix := strings.TrimSuffix(node.Path, "/") + "/"
			if err := tx.
				Where("project_id = ? AND path LIKE ? ESCAPE '\\'", projectID, escapeLike(prefix)+"%").
				Delete(&model.FileNode{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", node.ID).Delete(&model.FileNode{}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// escapeLike escapes LIKE wildcards in a literal path prefix. The trailing
// separator on folder prefixes keeps "/src2" from matching a "/src" subtree.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
