package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/appforge-io/appforge/internal/pkg/slug"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// slugInsertRetries bounds the duplicate-key retry loop. The pre-check in
// slug.Unique already resolves almost every collision; the retries only
// cover concurrent writers racing for the same base name.
const slugInsertRetries = 5

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	// GetBySlug returns (nil, nil) when no project has the slug.
	GetBySlug(ctx context.Context, s string) (*model.Project, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	// Delete reports false for a missing project and for a wrong owner
	// alike; callers cannot distinguish the two.
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (bool, error)
}

type projectService struct {
	r repo.ProjectRepo
}

func NewProjectService(r repo.ProjectRepo) ProjectService {
	return &projectService{r: r}
}

type CreateProjectInput struct {
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Prompt      string    `json:"prompt"`
}

type UpdateProjectInput struct {
	Name        *string             `json:"name,omitempty"`
	Description repo.NullableString `json:"-"`
	Prompt      *string             `json:"prompt,omitempty"`
}

// slugChoice carries the base slug and current suffix index across the
// insert-time retry loop. Deriving the next candidate from the base keeps
// digit-ending bases intact: "app-2024" retries as "app-2024-1", never
// "app-2025".
type slugChoice struct {
	value string
	base  string
	n     int
}

func (c *slugChoice) advance() {
	c.n++
	c.value = fmt.Sprintf("%s-%d", c.base, c.n)
}

// pickSlug resolves a unique slug for name against the store. Any repo
// error aborts the walk and is returned.
func (s *projectService) pickSlug(ctx context.Context, name string) (slugChoice, error) {
	var lookupErr error
	value, n := slug.Unique(name, func(c string) bool {
		if lookupErr != nil {
			return false
		}
		exists, err := s.r.SlugExists(ctx, c)
		if err != nil {
			lookupErr = err
			return false
		}
		return exists
	})
	if lookupErr != nil {
		return slugChoice{}, lookupErr
	}
	return slugChoice{value: value, base: slug.Make(name), n: n}, nil
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	choice, err := s.pickSlug(ctx, in.Name)
	if err != nil {
		return nil, err
	}

	// The pre-check can lose a race against a concurrent writer; the
	// unique constraint on slug is the real backstop, so a duplicate-key
	// failure means "advance to the next suffix and try again".
	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		p := &model.Project{
			OwnerID:     in.OwnerID,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Prompt:      in.Prompt,
			Slug:        choice.value,
		}
		err := s.r.Create(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		choice.advance()
	}
	return nil, ErrSlugTaken
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) GetBySlug(ctx context.Context, sl string) (*model.Project, error) {
	p, err := s.r.GetBySlug(ctx, sl)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error) {
	return s.r.ListByOwner(ctx, ownerID)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	upd := repo.ProjectUpdate{
		Prompt:      in.Prompt,
		Description: in.Description,
	}

	// Renaming recomputes the slug from the new name.
	var choice slugChoice
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, ErrEmptyName
		}
		name := strings.TrimSpace(*in.Name)
		upd.Name = &name

		var err error
		choice, err = s.pickSlug(ctx, name)
		if err != nil {
			return nil, err
		}
		upd.Slug = &choice.value
	}

	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		p, err := s.r.Update(ctx, id, upd)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		if upd.Slug != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			choice.advance()
			upd.Slug = &choice.value
			continue
		}
		return nil, err
	}
	return nil, ErrSlugTaken
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (bool, error) {
	// Cascade removal of file nodes, chat messages and deployments is
	// handled by the database foreign key constraints (ON DELETE CASCADE).
	return s.r.DeleteOwned(ctx, id, ownerID)
}
