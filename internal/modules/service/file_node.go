package service

import (
	"context"
	"errors"
	"strings"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/appforge-io/appforge/internal/pkg/treepath"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileNodeService interface {
	Create(ctx context.Context, in CreateFileNodeInput) (*model.FileNode, error)
	List(ctx context.Context, projectID uuid.UUID) ([]*model.FileNode, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateFileNodeInput) (*model.FileNode, error)
	Delete(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (bool, error)
	// Raw returns a file's content with a sniffed content type for
	// serving it outside the JSON envelope.
	Raw(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*RawFileOutput, error)
}

type fileNodeService struct {
	r repo.FileNodeRepo
}

func NewFileNodeService(r repo.FileNodeRepo) FileNodeService {
	return &fileNodeService{r: r}
}

type CreateFileNodeInput struct {
	ProjectID uuid.UUID `json:"project_id"`
	Path      string    `json:"path"`
	Name      string    `json:"name,omitempty"`
	Content   string    `json:"content,omitempty"`
	IsFolder  bool      `json:"is_folder"`
}

type UpdateFileNodeInput struct {
	Name    *string `json:"name,omitempty"`
	Content *string `json:"content,omitempty"`
	Path    *string `json:"path,omitempty"`
}

type RawFileOutput struct {
	Name        string
	Content     []byte
	ContentType string
}

func (s *fileNodeService) Create(ctx context.Context, in CreateFileNodeInput) (*model.FileNode, error) {
	if strings.TrimSpace(in.Path) == "" || treepath.Normalize(in.Path) == "/" {
		return nil, ErrEmptyPath
	}

	path := treepath.Normalize(in.Path)
	name := in.Name
	if name == "" {
		name = treepath.Base(path)
	}

	n := &model.FileNode{
		ProjectID:  in.ProjectID,
		Path:       path,
		Name:       name,
		Content:    in.Content,
		IsFolder:   in.IsFolder,
		ParentPath: treepath.ParentPath(path),
	}
	if err := s.r.Create(ctx, n); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPathTaken
		}
		return nil, err
	}
	return n, nil
}

func (s *fileNodeService) List(ctx context.Context, projectID uuid.UUID) ([]*model.FileNode, error) {
	return s.r.ListByProject(ctx, projectID)
}

func (s *fileNodeService) Update(ctx context.Context, id uuid.UUID, in UpdateFileNodeInput) (*model.FileNode, error) {
	if in.Path != nil && treepath.Normalize(*in.Path) == "/" {
		return nil, ErrEmptyPath
	}
	n, err := s.r.Update(ctx, id, repo.FileNodeUpdate{
		Name:    in.Name,
		Content: in.Content,
		Path:    in.Path,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNodeNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPathTaken
		}
		return nil, err
	}
	return n, nil
}

func (s *fileNodeService) Delete(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (bool, error) {
	return s.r.Delete(ctx, id, projectID)
}

func (s *fileNodeService) Raw(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*RawFileOutput, error) {
	n, err := s.r.GetByID(ctx, id, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNodeNotFound
		}
		return nil, err
	}
	if n.IsFolder {
		return nil, ErrFileNodeNotFound
	}

	content := []byte(n.Content)
	return &RawFileOutput{
		Name:        n.Name,
		Content:     content,
		ContentType: mimetype.Detect(content).String(),
	}, nil
}
