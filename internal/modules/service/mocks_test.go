package service

import (
	"context"
	"time"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, id uuid.UUID, upd repo.ProjectUpdate) (*model.Project, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

type MockFileNodeRepo struct {
	mock.Mock
}

func (m *MockFileNodeRepo) Create(ctx context.Context, n *model.FileNode) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockFileNodeRepo) CreateAll(ctx context.Context, projectID uuid.UUID, nodes []*model.FileNode) error {
	args := m.Called(ctx, projectID, nodes)
	return args.Error(0)
}

func (m *MockFileNodeRepo) GetByID(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.FileNode, error) {
	args := m.Called(ctx, id, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileNode), args.Error(1)
}

func (m *MockFileNodeRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.FileNode, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FileNode), args.Error(1)
}

func (m *MockFileNodeRepo) Update(ctx context.Context, id uuid.UUID, upd repo.FileNodeUpdate) (*model.FileNode, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileNode), args.Error(1)
}

func (m *MockFileNodeRepo) Delete(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, projectID)
	return args.Bool(0), args.Error(1)
}

type MockChatMessageRepo struct {
	mock.Mock
}

func (m *MockChatMessageRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatMessageRepo) ListByProject(ctx context.Context, projectID uuid.UUID, limit int, afterTime *time.Time, afterID *uuid.UUID) ([]*model.ChatMessage, error) {
	args := m.Called(ctx, projectID, limit, afterTime, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ChatMessage), args.Error(1)
}

type MockPromptSuggestionRepo struct {
	mock.Mock
}

func (m *MockPromptSuggestionRepo) ListActive(ctx context.Context) ([]*model.PromptSuggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PromptSuggestion), args.Error(1)
}

func (m *MockPromptSuggestionRepo) Seed(ctx context.Context, suggestions []model.PromptSuggestion) error {
	args := m.Called(ctx, suggestions)
	return args.Error(0)
}

type MockDeploymentRepo struct {
	mock.Mock
}

func (m *MockDeploymentRepo) Create(ctx context.Context, d *model.Deployment) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeploymentRepo) GetByID(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.Deployment, error) {
	args := m.Called(ctx, id, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Deployment), args.Error(1)
}

func (m *MockDeploymentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Deployment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Deployment), args.Error(1)
}

func (m *MockDeploymentRepo) Update(ctx context.Context, id uuid.UUID, upd repo.DeploymentUpdate) (*model.Deployment, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Deployment), args.Error(1)
}

type MockJobPublisher struct {
	mock.Mock
}

func (m *MockJobPublisher) PublishJSON(ctx context.Context, routingKey string, body any) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}
