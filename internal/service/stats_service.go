package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
)

// StatsService is the read side of the dashboard: counters and aggregates
// recomputed from the store on every call, never cached. Every query
// tolerates an empty store and returns neutral results.
type StatsService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	TeacherSummary(ctx context.Context) ([]dto.TeacherSummaryRow, error)
	QuestionAverages(ctx context.Context) (*dto.QuestionAverages, error)
	// ListRatings returns raw rating rows newest-first, optionally
	// filtered by teacher or subject, for the dashboard and export.
	ListRatings(ctx context.Context, teacher, subject string) ([]model.Rating, error)
	// Reset wipes ratings, sessions and tokens in one transaction. The
	// only mutation path for recorded ratings.
	Reset(ctx context.Context) error
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService creates a StatsService instance.
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	tokenTotal, tokenUsed, err := s.repo.Token.Stats(ctx)
	if err != nil {
		s.logger.Error("querying token stats failed", zap.Error(err))
		return nil, err
	}

	sessionTotal, sessionComplete, err := s.repo.Session.Stats(ctx)
	if err != nil {
		s.logger.Error("querying session stats failed", zap.Error(err))
		return nil, err
	}

	return &dto.StatsResponse{
		Tokens: dto.TokenStats{
			Total:  tokenTotal,
			Used:   tokenUsed,
			Unused: tokenTotal - tokenUsed,
		},
		Sessions: dto.SessionStats{
			Total:      sessionTotal,
			Complete:   sessionComplete,
			Incomplete: sessionTotal - sessionComplete,
		},
	}, nil
}

func (s *statsService) TeacherSummary(ctx context.Context) ([]dto.TeacherSummaryRow, error) {
	rows, err := s.repo.Rating.TeacherSummary(ctx)
	if err != nil {
		s.logger.Error("querying teacher summary failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherSummaryRow, len(rows))
	for i, row := range rows {
		result[i] = dto.TeacherSummaryRow{
			Teacher:       row.Teacher,
			Subject:       row.Subject,
			FeedbackCount: row.FeedbackCount,
			AvgQ1:         row.AvgQ1,
			AvgQ2:         row.AvgQ2,
			AvgQ3:         row.AvgQ3,
			AvgQ4:         row.AvgQ4,
			AvgQ5:         row.AvgQ5,
			AvgQ6:         row.AvgQ6,
			AvgQ7:         row.AvgQ7,
			AvgQ8:         row.AvgQ8,
			AvgQ9:         row.AvgQ9,
			AvgQ10:        row.AvgQ10,
			OverallAvg:    row.OverallAvg,
		}
	}
	return result, nil
}

func (s *statsService) QuestionAverages(ctx context.Context) (*dto.QuestionAverages, error) {
	avgs, err := s.repo.Rating.QuestionAverages(ctx)
	if err != nil {
		s.logger.Error("querying question averages failed", zap.Error(err))
		return nil, err
	}
	if avgs == nil {
		// empty store: all-zero averages, not an error
		return &dto.QuestionAverages{}, nil
	}
	return &dto.QuestionAverages{
		Q1: avgs.Q1, Q2: avgs.Q2, Q3: avgs.Q3, Q4: avgs.Q4, Q5: avgs.Q5,
		Q6: avgs.Q6, Q7: avgs.Q7, Q8: avgs.Q8, Q9: avgs.Q9, Q10: avgs.Q10,
	}, nil
}

func (s *statsService) ListRatings(ctx context.Context, teacher, subject string) ([]model.Rating, error) {
	ratings, err := s.repo.Rating.List(ctx, teacher, subject)
	if err != nil {
		s.logger.Error("querying ratings failed", zap.Error(err))
		return nil, err
	}
	return ratings, nil
}

func (s *statsService) Reset(ctx context.Context) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Rating.DeleteAll(ctx); err != nil {
			return err
		}
		if err := tx.Session.DeleteAll(ctx); err != nil {
			return err
		}
		return tx.Token.DeleteAll(ctx)
	})
	if err != nil {
		s.logger.Error("resetting data failed", zap.Error(err))
		return err
	}
	s.logger.Info("all feedback data wiped")
	return nil
}
