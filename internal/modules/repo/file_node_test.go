package repo

import (
	"context"
	"testing"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/pkg/treepath"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "host=localhost user=appforge password=appforge dbname=appforge_test port=5432 sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Skip("test database not available, skipping integration tests")
		return nil
	}

	db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")
	err = db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.FileNode{},
		&model.ChatMessage{},
		&model.Deployment{},
	)
	require.NoError(t, err)

	return db
}

func createTestProject(t *testing.T, db *gorm.DB, slug string) *model.Project {
	t.Helper()

	user := &model.User{Email: slug + "@example.com", PasswordHash: "x", Name: "Test"}
	require.NoError(t, db.Create(user).Error)

	project := &model.Project{
		OwnerID: user.ID,
		Name:    "Test Project",
		Prompt:  "a test project",
		Slug:    slug,
	}
	require.NoError(t, db.Create(project).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM projects WHERE id = ?", project.ID)
		db.Exec("DELETE FROM users WHERE id = ?", user.ID)
	})
	return project
}

func mustCreateNode(t *testing.T, r FileNodeRepo, projectID uuid.UUID, path string, isFolder bool) *model.FileNode {
	t.Helper()
	n := &model.FileNode{
		ProjectID:  projectID,
		Path:       path,
		Name:       treepath.Base(path),
		IsFolder:   isFolder,
		ParentPath: treepath.ParentPath(path),
	}
	require.NoError(t, r.Create(context.Background(), n))
	return n
}

func TestFileNodeRepo_DeleteFolderSubtree(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	r := NewFileNodeRepo(db)
	ctx := context.Background()

	project := createTestProject(t, db, "subtree-delete-"+uuid.NewString()[:8])

	src := mustCreateNode(t, r, project.ID, "/src", true)
	mustCreateNode(t, r, project.ID, "/src/App.jsx", false)
	mustCreateNode(t, r, project.ID, "/src/components", true)
	mustCreateNode(t, r, project.ID, "/src/components/Button.jsx", false)
	// shared prefix sibling must survive the subtree delete
	mustCreateNode(t, r, project.ID, "/src2", true)
	survivor := mustCreateNode(t, r, project.ID, "/src2/main.go", false)
	readme := mustCreateNode(t, r, project.ID, "/README.md", false)

	deleted, err := r.Delete(ctx, src.ID, project.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	remaining, err := r.ListByProject(ctx, project.ID)
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, n := range remaining {
		paths[n.Path] = true
	}
	assert.Equal(t, map[string]bool{
		"/src2":         true,
		"/src2/main.go": true,
		"/README.md":    true,
	}, paths)
	_ = survivor
	_ = readme
}

func TestFileNodeRepo_DeleteScopedToProject(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	r := NewFileNodeRepo(db)
	ctx := context.Background()

	a := createTestProject(t, db, "scope-a-"+uuid.NewString()[:8])
	b := createTestProject(t, db, "scope-b-"+uuid.NewString()[:8])

	node := mustCreateNode(t, r, a.ID, "/notes.txt", false)

	// wrong project never deletes
	deleted, err := r.Delete(ctx, node.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := r.GetByID(ctx, node.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, node.ID, got.ID)
}

func TestFileNodeRepo_DuplicatePathInProject(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	r := NewFileNodeRepo(db)
	ctx := context.Background()

	a := createTestProject(t, db, "dup-a-"+uuid.NewString()[:8])
	b := createTestProject(t, db, "dup-b-"+uuid.NewString()[:8])

	mustCreateNode(t, r, a.ID, "/index.html", false)

	// same path in the same project violates the unique index
	err := r.Create(ctx, &model.FileNode{ProjectID: a.ID, Path: "/index.html", Name: "index.html"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// same path in another project is fine
	err = r.Create(ctx, &model.FileNode{ProjectID: b.ID, Path: "/index.html", Name: "index.html"})
	assert.NoError(t, err)
}

func TestFileNodeRepo_CreateAllRollsBack(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	r := NewFileNodeRepo(db)
	ctx := context.Background()

	project := createTestProject(t, db, "rollback-"+uuid.NewString()[:8])
	mustCreateNode(t, r, project.ID, "/clash.txt", false)

	batch := []*model.FileNode{
		{ProjectID: project.ID, Path: "/a.txt", Name: "a.txt"},
		{ProjectID: project.ID, Path: "/b.txt", Name: "b.txt"},
		{ProjectID: project.ID, Path: "/clash.txt", Name: "clash.txt"},
	}
	err := r.CreateAll(ctx, project.ID, batch)
	require.Error(t, err)

	// the duplicate rolled back the whole batch
	remaining, err := r.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "/clash.txt", remaining[0].Path)
}

func TestFileNodeRepo_UpdatePathRecomputesParent(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	r := NewFileNodeRepo(db)
	ctx := context.Background()

	project := createTestProject(t, db, "move-"+uuid.NewString()[:8])
	mustCreateNode(t, r, project.ID, "/docs", true)
	node := mustCreateNode(t, r, project.ID, "/notes.txt", false)

	newPath := "/docs/notes.txt"
	got, err := r.Update(ctx, node.ID, FileNodeUpdate{Path: &newPath})
	require.NoError(t, err)

	assert.Equal(t, "/docs/notes.txt", got.Path)
	if assert.NotNil(t, got.ParentPath) {
		assert.Equal(t, "/docs", *got.ParentPath)
	}
}
