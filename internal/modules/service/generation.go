package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/appforge-io/appforge/internal/pkg/generator"
	"github.com/appforge-io/appforge/internal/pkg/treepath"
	"github.com/appforge-io/appforge/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GenerationService runs the simulated code-generation pipeline: classify
// the project's stored prompt, synthesize the matching skeleton, persist it
// as the project's file tree.
type GenerationService interface {
	Generate(ctx context.Context, projectID uuid.UUID) (*GenerateOutput, error)
}

type generationService struct {
	projects repo.ProjectRepo
	nodes    repo.FileNodeRepo
	chat     repo.ChatMessageRepo
	log      *zap.Logger
}

func NewGenerationService(projects repo.ProjectRepo, nodes repo.FileNodeRepo, chat repo.ChatMessageRepo, log *zap.Logger) GenerationService {
	return &generationService{projects: projects, nodes: nodes, chat: chat, log: log}
}

type GenerateOutput struct {
	Project        *model.Project      `json:"project"`
	Archetype      generator.Archetype `json:"archetype"`
	GeneratedNodes []*model.FileNode   `json:"generated_nodes"`
}

func (s *generationService) Generate(ctx context.Context, projectID uuid.UUID) (*GenerateOutput, error) {
	start := time.Now()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	archetype := generator.Classify(project.Prompt)
	specs := generator.Synthesize(archetype, project.Name)

	// Persist in emitted order (parents before children) inside one
	// transaction, so a failed insert never leaves a partial tree.
	nodes := make([]*model.FileNode, 0, len(specs))
	for _, spec := range specs {
		nodes = append(nodes, &model.FileNode{
			ProjectID:  project.ID,
			Path:       spec.Path,
			Name:       spec.Name,
			Content:    spec.Content,
			IsFolder:   spec.IsFolder,
			ParentPath: treepath.ParentPath(spec.Path),
		})
	}
	if err := s.nodes.CreateAll(ctx, project.ID, nodes); err != nil {
		telemetry.RecordGenerationError(ctx, string(archetype))
		return nil, err
	}

	// Append the assistant's summary to the project transcript. Failing
	// to log the chat line does not fail the generation.
	summary := fmt.Sprintf("I generated a %s project skeleton for %q with %d files and folders. Open the workspace to start editing.",
		archetype, project.Name, len(nodes))
	chatMsg := &model.ChatMessage{
		ProjectID:    project.ID,
		UserID:       project.OwnerID,
		Message:      project.Prompt,
		Response:     &summary,
		IsAIResponse: true,
		Meta: datatypes.JSONMap{
			"archetype":       string(archetype),
			"generated_nodes": len(nodes),
		},
	}
	if err := s.chat.Create(ctx, chatMsg); err != nil {
		s.log.Sugar().Warnw("generation chat append failed", "project", project.ID, "err", err)
	}

	telemetry.RecordGenerationSuccess(ctx, string(archetype), time.Since(start), len(nodes))
	s.log.Sugar().Infow("project generated",
		"project", project.ID,
		"archetype", archetype,
		"nodes", len(nodes),
	)

	return &GenerateOutput{
		Project:        project,
		Archetype:      archetype,
		GeneratedNodes: nodes,
	}, nil
}
