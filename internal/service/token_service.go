package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/YuvrajS01/Anon-Feedback-System/config"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/tokengen"
)

// TokenService manages the pool of single-use access tokens.
type TokenService interface {
	// Generate creates count fresh codes and issues them. Codes that
	// collide with existing ones are skipped silently, so Added can be
	// lower than Requested.
	Generate(ctx context.Context, count, length int) (*dto.GenerateTokensResponse, error)
	// Issue adds externally supplied codes (normalized), skipping
	// duplicates, and returns how many were genuinely new.
	Issue(ctx context.Context, codes []string) (int64, error)
	// Verify reports whether a code exists and is still unused. It never
	// redeems; redemption happens only at session finalization.
	Verify(ctx context.Context, code string) (bool, error)
}

type tokenService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTokenService creates a TokenService instance.
func NewTokenService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TokenService {
	return &tokenService{cfg: cfg, repo: repo, logger: logger}
}

func (s *tokenService) Generate(ctx context.Context, count, length int) (*dto.GenerateTokensResponse, error) {
	if length <= 0 {
		length = s.cfg.Token.Length
	}

	codes, err := tokengen.GenerateUnique(count, length)
	if err != nil {
		s.logger.Error("generating token codes failed", zap.Error(err))
		return nil, err
	}

	added, err := s.repo.Token.BulkInsert(ctx, codes)
	if err != nil {
		s.logger.Error("issuing tokens failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("tokens issued", zap.Int("requested", count), zap.Int64("added", added))

	return &dto.GenerateTokensResponse{
		Requested: count,
		Added:     int(added),
		Codes:     codes,
	}, nil
}

func (s *tokenService) Issue(ctx context.Context, codes []string) (int64, error) {
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = tokengen.Normalize(code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}

	added, err := s.repo.Token.BulkInsert(ctx, normalized)
	if err != nil {
		s.logger.Error("issuing tokens failed", zap.Error(err))
		return 0, err
	}
	return added, nil
}

func (s *tokenService) Verify(ctx context.Context, code string) (bool, error) {
	token, err := s.repo.Token.GetByCode(ctx, tokengen.Normalize(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error("querying token failed", zap.Error(err))
		return false, err
	}
	return !token.Used, nil
}
