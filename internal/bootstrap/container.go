package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/appforge-io/appforge/internal/config"
	"github.com/appforge-io/appforge/internal/infra/cache"
	"github.com/appforge-io/appforge/internal/infra/db"
	"github.com/appforge-io/appforge/internal/infra/logger"
	mq "github.com/appforge-io/appforge/internal/infra/queue"
	"github.com/appforge-io/appforge/internal/modules/handler"
	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/appforge-io/appforge/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			_ = d.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")

			_ = d.AutoMigrate(
				&model.User{},
				&model.Project{},
				&model.FileNode{},
				&model.ChatMessage{},
				&model.PromptSuggestion{},
				&model.Deployment{},
			)
		}

		if err := EnsureSuggestionCatalog(context.Background(), d, log); err != nil {
			return nil, err
		}

		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// RabbitMQ connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)

		useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")
		if useTLS {
			tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
			url := cfg.RabbitMQ.URL
			if strings.HasPrefix(url, "amqp://") {
				url = strings.Replace(url, "amqp://", "amqps://", 1)
			}
			return amqp.DialTLS(url, tlsConfig)
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	// RabbitMQ publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		cfg := do.MustInvoke[*config.Config](i)
		return mq.NewPublisher(conn, log, cfg)
	})

	// RabbitMQ consumer for the deploy queue
	do.Provide(inj, func(i *do.Injector) (*mq.Consumer, error) {
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		cfg := do.MustInvoke[*config.Config](i)
		return mq.NewConsumer(conn, cfg.RabbitMQ.DeployQueue, cfg.RabbitMQ.Prefetch, log, cfg)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FileNodeRepo, error) {
		return repo.NewFileNodeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ChatMessageRepo, error) {
		return repo.NewChatMessageRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PromptSuggestionRepo, error) {
		return repo.NewPromptSuggestionRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DeploymentRepo, error) {
		return repo.NewDeploymentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(do.MustInvoke[repo.ProjectRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FileNodeService, error) {
		return service.NewFileNodeService(do.MustInvoke[repo.FileNodeRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.GenerationService, error) {
		return service.NewGenerationService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.FileNodeRepo](i),
			do.MustInvoke[repo.ChatMessageRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ChatService, error) {
		return service.NewChatService(do.MustInvoke[repo.ChatMessageRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SuggestionService, error) {
		return service.NewSuggestionService(
			do.MustInvoke[repo.PromptSuggestionRepo](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DeploymentService, error) {
		return service.NewDeploymentService(
			do.MustInvoke[repo.DeploymentRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*service.DeployWorker, error) {
		return service.NewDeployWorker(
			do.MustInvoke[repo.DeploymentRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*mq.Consumer](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.GenerationService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FileNodeHandler, error) {
		return handler.NewFileNodeHandler(do.MustInvoke[service.FileNodeService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ChatHandler, error) {
		return handler.NewChatHandler(do.MustInvoke[service.ChatService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SuggestionHandler, error) {
		return handler.NewSuggestionHandler(do.MustInvoke[service.SuggestionService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DeploymentHandler, error) {
		return handler.NewDeploymentHandler(do.MustInvoke[service.DeploymentService](i)), nil
	})

	return inj
}
