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
	"github.com/appforge-io/appforge/internal/telemetry"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeployWorker drives the simulated deployment pipeline. Each consumed job
// walks one deployment through pending -> building -> deployed with a fixed
// delay per step. No external infrastructure is ever touched; the pipeline
// only mutates deployment rows and the owning project's deploy state.
type DeployWorker struct {
	deployments repo.DeploymentRepo
	projects    repo.ProjectRepo
	consumer    *mq.Consumer
	cfg         *config.Config
	log         *zap.Logger
}

func NewDeployWorker(deployments repo.DeploymentRepo, projects repo.ProjectRepo, consumer *mq.Consumer, cfg *config.Config, log *zap.Logger) *DeployWorker {
	return &DeployWorker{
		deployments: deployments,
		projects:    projects,
		consumer:    consumer,
		cfg:         cfg,
		log:         log,
	}
}

// Run consumes deploy jobs until the context is cancelled.
func (w *DeployWorker) Run(ctx context.Context) error {
	return w.consumer.Handle(ctx, func(msgCtx context.Context, body []byte) error {
		var job DeployJobMQ
		if err := sonic.Unmarshal(body, &job); err != nil {
			// Malformed payloads cannot succeed on redelivery; drop.
			w.log.Sugar().Errorw("deploy job unmarshal failed", "err", err)
			return nil
		}
		return w.process(msgCtx, job)
	})
}

func (w *DeployWorker) process(ctx context.Context, job DeployJobMQ) error {
	d, err := w.deployments.GetByID(ctx, job.DeploymentID, job.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Project or deployment deleted since the trigger; nothing
			// left to build.
			return nil
		}
		return err
	}

	project, err := w.projects.GetByID(ctx, job.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return w.fail(ctx, d, "project no longer exists")
		}
		return err
	}

	logs := deref(d.BuildLogs)

	logs += logLine("build started")
	building := model.DeploymentBuilding
	if _, err := w.deployments.Update(ctx, d.ID, repo.DeploymentUpdate{
		Status:    &building,
		BuildLogs: &logs,
	}); err != nil {
		return err
	}

	if err := w.sleep(ctx); err != nil {
		return err
	}

	logs += logLine("installing dependencies")
	logs += logLine("compiling project " + project.Slug)
	if _, err := w.deployments.Update(ctx, d.ID, repo.DeploymentUpdate{BuildLogs: &logs}); err != nil {
		return err
	}

	if err := w.sleep(ctx); err != nil {
		return err
	}

	url := fmt.Sprintf("https://%s.%s", project.Slug, w.cfg.Deploy.Domain)
	logs += logLine("deployed to " + url)
	deployed := model.DeploymentDeployed
	now := time.Now().UTC()
	if _, err := w.deployments.Update(ctx, d.ID, repo.DeploymentUpdate{
		Status:        &deployed,
		DeploymentURL: &url,
		BuildLogs:     &logs,
		CompletedAt:   &now,
	}); err != nil {
		return err
	}

	isDeployed := true
	if _, err := w.projects.Update(ctx, project.ID, repo.ProjectUpdate{
		IsDeployed:    &isDeployed,
		DeploymentURL: repo.NullableString{Set: true, Value: &url},
	}); err != nil {
		return err
	}

	telemetry.RecordDeploySuccess(ctx)
	w.log.Sugar().Infow("deployment finished", "deployment", d.ID, "project", project.ID, "url", url)
	return nil
}

func (w *DeployWorker) fail(ctx context.Context, d *model.Deployment, reason string) error {
	logs := deref(d.BuildLogs) + logLine("build failed: "+reason)
	failed := model.DeploymentFailed
	now := time.Now().UTC()
	_, err := w.deployments.Update(ctx, d.ID, repo.DeploymentUpdate{
		Status:      &failed,
		BuildLogs:   &logs,
		CompletedAt: &now,
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	telemetry.RecordDeployError(ctx, reason)
	return nil
}

func (w *DeployWorker) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.cfg.Deploy.StepDelay):
		return nil
	}
}

func logLine(msg string) string {
	return fmt.Sprintf("[%s] %s\n", time.Now().UTC().Format(time.RFC3339), msg)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
