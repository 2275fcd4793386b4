package repo

import (
	"context"
	"time"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepo interface {
	Create(ctx context.Context, m *model.ChatMessage) error
	// ListByProject returns up to limit messages in transcript order,
	// starting strictly after the (created_at, id) keyset when given.
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int, afterTime *time.Time, afterID *uuid.UUID) ([]*model.ChatMessage, error)
}

type chatMessageRepo struct{ db *gorm.DB }

func NewChatMessageRepo(db *gorm.DB) ChatMessageRepo {
	return &chatMessageRepo{db: db}
}

func (r *chatMessageRepo) Create(ctx context.Context, m *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *chatMessageRepo) ListByProject(ctx context.Context, projectID uuid.UUID, limit int, afterTime *time.Time, afterID *uuid.UUID) ([]*model.ChatMessage, error) {
	q := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC")

	if afterTime != nil && afterID != nil {
		q = q.Where("(created_at, id) > (?, ?)", *afterTime, *afterID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var messages []*model.ChatMessage
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
