package service

import (
	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/config"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/catalog"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/jwt"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/redis"
)

// Service aggregates all services.
type Service struct {
	Auth     AuthService
	Token    TokenService
	Feedback FeedbackService
	Stats    StatsService
	Catalog  CatalogService
	Export   ExportService
}

// NewService creates the Service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	store *catalog.Store,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, jwtMgr, rdb, logger),
		Token:    NewTokenService(cfg, repo, logger),
		Feedback: NewFeedbackService(repo, logger),
		Stats:    NewStatsService(repo, logger),
		Catalog:  NewCatalogService(store, logger),
		Export:   NewExportService(repo, logger),
	}
}
