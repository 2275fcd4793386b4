package bootstrap

import (
	"context"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// suggestionCatalog is the built-in set of starting-point prompts. Seeding
// skips texts that already exist, so operator-added rows survive restarts.
var suggestionCatalog = []model.PromptSuggestion{
	{Text: "Build a todo app with React and a REST API", Category: strPtr("productivity"), IsActive: true},
	{Text: "Create a personal portfolio website", Category: strPtr("website"), IsActive: true},
	{Text: "Make a full stack blog platform with comments", Category: strPtr("content"), IsActive: true},
	{Text: "Build an expense tracker with charts", Category: strPtr("finance"), IsActive: true},
	{Text: "Create a recipe sharing app", Category: strPtr("social"), IsActive: true},
	{Text: "Build a REST API for a bookstore", Category: strPtr("backend"), IsActive: true},
	{Text: "Make a landing page for a coffee shop", Category: strPtr("website"), IsActive: true},
	{Text: "Create a habit tracker with streaks", Category: strPtr("productivity"), IsActive: true},
}

// EnsureSuggestionCatalog seeds the prompt suggestion catalog when the
// service starts.
func EnsureSuggestionCatalog(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	r := repo.NewPromptSuggestionRepo(db)
	if err := r.Seed(ctx, suggestionCatalog); err != nil {
		return err
	}
	log.Sugar().Infow("suggestion catalog seeded", "entries", len(suggestionCatalog))
	return nil
}
