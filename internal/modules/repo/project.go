package repo

import (
	"context"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NullableString distinguishes "leave unchanged" (Set false) from "write
// this value" (Set true), where a nil Value writes SQL NULL. Needed for
// nullable columns like description and deployment_url.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field as set whenever the key is present in
// the payload, so an explicit null clears the column while an absent
// key leaves it alone.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	return sonic.Unmarshal(data, &n.Value)
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(n.Value)
}

// ProjectUpdate is an explicit partial-update carrier: nil pointer fields
// are left untouched.
type ProjectUpdate struct {
	Name          *string
	Slug          *string
	Prompt        *string
	Description   NullableString
	IsDeployed    *bool
	DeploymentURL NullableString
}

func (u ProjectUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Slug != nil {
		cols["slug"] = *u.Slug
	}
	if u.Prompt != nil {
		cols["prompt"] = *u.Prompt
	}
	if u.Description.Set {
		cols["description"] = u.Description.Value
	}
	if u.IsDeployed != nil {
		cols["is_deployed"] = *u.IsDeployed
	}
	if u.DeploymentURL.Set {
		cols["deployment_url"] = u.DeploymentURL.Value
	}
	return cols
}

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, upd ProjectUpdate) (*model.Project, error)
	// DeleteOwned removes the project only when both id and owner match.
	// A wrong owner is a no-op returning false, indistinguishable from a
	// missing row.
	DeleteOwned(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) Update(ctx context.Context, id uuid.UUID, upd ProjectUpdate) (*model.Project, error) {
	cols := upd.columns()
	if len(cols) > 0 {
		res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *projectRepo) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Project{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *projectRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
