package service

import (
	"context"
	"errors"
	"testing"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/pkg/generator"
	"github.com/appforge-io/appforge/internal/pkg/treepath"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func generationFixture(prompt string) *model.Project {
	return &model.Project{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Name:    "My App",
		Slug:    "my-app",
		Prompt:  prompt,
	}
}

func TestGenerationService_Generate(t *testing.T) {
	t.Run("classifies prompt and persists tree", func(t *testing.T) {
		project := generationFixture("a react todo list")

		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		var persisted []*model.FileNode
		nodes := new(MockFileNodeRepo)
		nodes.On("CreateAll", mock.Anything, project.ID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).([]*model.FileNode)
			}).Return(nil)

		chat := new(MockChatMessageRepo)
		chat.On("Create", mock.Anything, mock.MatchedBy(func(m *model.ChatMessage) bool {
			return m.IsAIResponse && m.Response != nil && m.ProjectID == project.ID && m.Meta["archetype"] != nil
		})).Return(nil)

		svc := NewGenerationService(projects, nodes, chat, zap.NewNop())
		out, err := svc.Generate(context.Background(), project.ID)

		require.NoError(t, err)
		assert.Equal(t, generator.ArchetypeFrontend, out.Archetype)
		assert.Equal(t, persisted, out.GeneratedNodes)
		require.NotEmpty(t, persisted)

		// Parents precede children and parent_path is derived from path.
		folders := map[string]bool{}
		for _, n := range persisted {
			assert.Equal(t, project.ID, n.ProjectID)
			if p := treepath.ParentPath(n.Path); p != nil {
				require.NotNil(t, n.ParentPath)
				assert.Equal(t, *p, *n.ParentPath)
				assert.True(t, folders[*p], "node %q before its parent", n.Path)
			} else {
				assert.Nil(t, n.ParentPath)
			}
			if n.IsFolder {
				folders[n.Path] = true
			}
		}
		chat.AssertExpectations(t)
	})

	t.Run("missing project fails before synthesis", func(t *testing.T) {
		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewGenerationService(projects, new(MockFileNodeRepo), new(MockChatMessageRepo), zap.NewNop())
		_, err := svc.Generate(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("failed bulk insert surfaces error", func(t *testing.T) {
		project := generationFixture("an api for books")
		boom := errors.New("insert failed")

		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		nodes := new(MockFileNodeRepo)
		nodes.On("CreateAll", mock.Anything, project.ID, mock.Anything).Return(boom)

		svc := NewGenerationService(projects, nodes, new(MockChatMessageRepo), zap.NewNop())
		_, err := svc.Generate(context.Background(), project.ID)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("chat append failure does not fail generation", func(t *testing.T) {
		project := generationFixture("just something nice")

		projects := new(MockProjectRepo)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		nodes := new(MockFileNodeRepo)
		nodes.On("CreateAll", mock.Anything, project.ID, mock.Anything).Return(nil)
		chat := new(MockChatMessageRepo)
		chat.On("Create", mock.Anything, mock.Anything).Return(errors.New("chat down"))

		svc := NewGenerationService(projects, nodes, chat, zap.NewNop())
		out, err := svc.Generate(context.Background(), project.ID)

		require.NoError(t, err)
		assert.Equal(t, generator.ArchetypeBasic, out.Archetype)
	})
}
