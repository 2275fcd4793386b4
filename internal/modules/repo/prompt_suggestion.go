package repo

import (
	"context"

	"github.com/appforge-io/appforge/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromptSuggestionRepo interface {
	ListActive(ctx context.Context) ([]*model.PromptSuggestion, error)
	// Seed inserts catalog entries, skipping texts that already exist.
	Seed(ctx context.Context, suggestions []model.PromptSuggestion) error
}

type promptSuggestionRepo struct{ db *gorm.DB }

func NewPromptSuggestionRepo(db *gorm.DB) PromptSuggestionRepo {
	return &promptSuggestionRepo{db: db}
}

func (r *promptSuggestionRepo) ListActive(ctx context.Context) ([]*model.PromptSuggestion, error) {
	var suggestions []*model.PromptSuggestion
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *promptSuggestionRepo) Seed(ctx context.Context, suggestions []model.PromptSuggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "text"}},
			DoNothing: true,
		}).
		Create(&suggestions).Error
}
