package repo

import (
	"context"
	"time"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeploymentUpdate carries the fields the deploy worker advances as the
// simulated pipeline progresses.
type DeploymentUpdate struct {
	Status        *model.DeploymentStatus
	DeploymentURL *string
	BuildLogs     *string
	CompletedAt   *time.Time
}

type DeploymentRepo interface {
	Create(ctx context.Context, d *model.Deployment) error
	GetByID(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.Deployment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Deployment, error)
	Update(ctx context.Context, id uuid.UUID, upd DeploymentUpdate) (*model.Deployment, error)
}

type deploymentRepo struct{ db *gorm.DB }

func NewDeploymentRepo(db *gorm.DB) DeploymentRepo {
	return &deploymentRepo{db: db}
}

func (r *deploymentRepo) Create(ctx context.Context, d *model.Deployment) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deploymentRepo) GetByID(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.Deployment, error) {
	var d model.Deployment
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deploymentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Deployment, error) {
	var deployments []*model.Deployment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&deployments).Error
	if err != nil {
		return nil, err
	}
	return deployments, nil
}

func (r *deploymentRepo) Update(ctx context.Context, id uuid.UUID, upd DeploymentUpdate) (*model.Deployment, error) {
	cols := map[string]interface{}{}
	if upd.Status != nil {
		cols["status"] = *upd.Status
	}
	if upd.DeploymentURL != nil {
		cols["deployment_url"] = *upd.DeploymentURL
	}
	if upd.BuildLogs != nil {
		cols["build_logs"] = *upd.BuildLogs
	}
	if upd.CompletedAt != nil {
		cols["completed_at"] = *upd.CompletedAt
	}

	var d model.Deployment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cols) > 0 {
			res := tx.Model(&model.Deployment{}).Where("id = ?", id).Updates(cols)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Where("id = ?", id).First(&d).Error
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}
