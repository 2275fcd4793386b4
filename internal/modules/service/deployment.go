package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appforge-io/appforge/internal/config"
	mq "github.com/appforge-io/appforge/internal/infra/queue"
	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DeploymentService interface {
	// Trigger records a pending deployment and hands it to the deploy
	// worker via the queue. The simulated build advances asynchronously.
	Trigger(ctx context.Context, projectID uuid.UUID) (*model.Deployment, error)
	List(ctx context.Context, projectID uuid.UUID) ([]*model.Deployment, error)
	Get(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.Deployment, error)
}

// DeployJobMQ is the queue payload handed from Trigger to the worker.
type DeployJobMQ struct {
	ProjectID    uuid.UUID `json:"project_id"`
	DeploymentID uuid.UUID `json:"deployment_id"`
}

// JobPublisher is the slice of the queue publisher the service needs.
// *mq.Publisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, body any) error
}

var _ JobPublisher = (*mq.Publisher)(nil)

type deploymentService struct {
	r         repo.DeploymentRepo
	projects  repo.ProjectRepo
	publisher JobPublisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewDeploymentService(r repo.DeploymentRepo, projects repo.ProjectRepo, publisher JobPublisher, cfg *config.Config, log *zap.Logger) DeploymentService {
	return &deploymentService{r: r, projects: projects, publisher: publisher, cfg: cfg, log: log}
}

func (s *deploymentService) Trigger(ctx context.Context, projectID uuid.UUID) (*model.Deployment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	logs := fmt.Sprintf("[%s] deployment queued for %s\n", time.Now().UTC().Format(time.RFC3339), project.Slug)
	d := &model.Deployment{
		ProjectID: project.ID,
		Status:    model.DeploymentPending,
		BuildLogs: &logs,
	}
	if err := s.r.Create(ctx, d); err != nil {
		return nil, err
	}

	job := DeployJobMQ{ProjectID: project.ID, DeploymentID: d.ID}
	if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.DeployQueue, job); err != nil {
		// The row stays pending; a requeued trigger or worker restart
		// can still pick it up manually.
		s.log.Sugar().Errorw("deploy job publish failed", "deployment", d.ID, "err", err)
		return nil, err
	}

	return d, nil
}

func (s *deploymentService) List(ctx context.Context, projectID uuid.UUID) ([]*model.Deployment, error) {
	return s.r.ListByProject(ctx, projectID)
}

func (s *deploymentService) Get(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*model.Deployment, error) {
	d, err := s.r.GetByID(ctx, id, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeploymentNotFound
		}
		return nil, err
	}
	return d, nil
}
