package service

import (
	"context"

	"github.com/appforge-io/appforge/internal/config"
	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const suggestionCacheKey = "appforge:suggestions:active"

type SuggestionService interface {
	List(ctx context.Context) ([]*model.PromptSuggestion, error)
}

type suggestionService struct {
	r   repo.PromptSuggestionRepo
	rdb *redis.Client
	cfg *config.Config
	log *zap.Logger
}

func NewSuggestionService(r repo.PromptSuggestionRepo, rdb *redis.Client, cfg *config.Config, log *zap.Logger) SuggestionService {
	return &suggestionService{r: r, rdb: rdb, cfg: cfg, log: log}
}

// List serves the active catalog through a redis read-through cache. The
// catalog is static after boot, so cache errors only cost a DB round trip.
func (s *suggestionService) List(ctx context.Context) ([]*model.PromptSuggestion, error) {
	if cached, err := s.rdb.Get(ctx, suggestionCacheKey).Bytes(); err == nil {
		var suggestions []*model.PromptSuggestion
		if err := sonic.Unmarshal(cached, &suggestions); err == nil {
			return suggestions, nil
		}
	} else if err != redis.Nil {
		s.log.Sugar().Warnw("suggestion cache read failed", "err", err)
	}

	suggestions, err := s.r.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := sonic.Marshal(suggestions); err == nil {
		if err := s.rdb.Set(ctx, suggestionCacheKey, b, s.cfg.Suggestions.CacheTTL).Err(); err != nil {
			s.log.Sugar().Warnw("suggestion cache write failed", "err", err)
		}
	}

	return suggestions, nil
}
