package service

import (
	"context"
	"errors"
	"testing"

	"github.com/appforge-io/appforge/internal/config"
	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func deployConfig() *config.Config {
	return &config.Config{
		RabbitMQ: config.RabbitMQConfig{DeployQueue: "appforge.deploy"},
		Deploy:   config.DeployConfig{Domain: "appforge.app"},
	}
}

func TestDeploymentService_Trigger(t *testing.T) {
	project := &model.Project{ID: uuid.New(), Slug: "my-app"}

	t.Run("records pending deployment and publishes job", func(t *testing.T) {
		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		deployments := new(MockDeploymentRepo)
		deployments.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Deployment) bool {
			return d.ProjectID == project.ID &&
				d.Status == model.DeploymentPending &&
				d.BuildLogs != nil
		})).Return(nil)

		pub := new(MockJobPublisher)
		pub.On("PublishJSON", mock.Anything, "appforge.deploy", mock.MatchedBy(func(body any) bool {
			job, ok := body.(DeployJobMQ)
			return ok && job.ProjectID == project.ID
		})).Return(nil)

		svc := NewDeploymentService(deployments, projects, pub, deployConfig(), zap.NewNop())
		d, err := svc.Trigger(context.Background(), project.ID)

		require.NoError(t, err)
		assert.Equal(t, model.DeploymentPending, d.Status)
		pub.AssertExpectations(t)
	})

	t.Run("missing project", func(t *testing.T) {
		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewDeploymentService(new(MockDeploymentRepo), projects, new(MockJobPublisher), deployConfig(), zap.NewNop())
		_, err := svc.Trigger(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("publish failure surfaces", func(t *testing.T) {
		boom := errors.New("broker gone")
		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		deployments := new(MockDeploymentRepo)
		deployments.On("Create", mock.Anything, mock.Anything).Return(nil)
		pub := new(MockJobPublisher)
		pub.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(boom)

		svc := NewDeploymentService(deployments, projects, pub, deployConfig(), zap.NewNop())
		_, err := svc.Trigger(context.Background(), project.ID)

		assert.ErrorIs(t, err, boom)
	})
}

func TestDeploymentService_Get(t *testing.T) {
	projectID := uuid.New()
	deploymentID := uuid.New()

	t.Run("found", func(t *testing.T) {
		want := &model.Deployment{ID: deploymentID, ProjectID: projectID}
		deployments := new(MockDeploymentRepo)
		deployments.On("GetByID", mock.Anything, deploymentID, projectID).Return(want, nil)

		svc := NewDeploymentService(deployments, new(MockProjectRepo), new(MockJobPublisher), deployConfig(), zap.NewNop())
		got, err := svc.Get(context.Background(), deploymentID, projectID)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("scoped to project", func(t *testing.T) {
		deployments := new(MockDeploymentRepo)
		deployments.On("GetByID", mock.Anything, deploymentID, projectID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewDeploymentService(deployments, new(MockProjectRepo), new(MockJobPublisher), deployConfig(), zap.NewNop())
		_, err := svc.Get(context.Background(), deploymentID, projectID)

		assert.ErrorIs(t, err, ErrDeploymentNotFound)
	})
}
