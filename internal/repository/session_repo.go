package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
)

// SessionRepository is the feedback-session data access interface.
type SessionRepository interface {
	Create(ctx context.Context, session *model.FeedbackSession) error
	GetByToken(ctx context.Context, token string) (*model.FeedbackSession, error)
	GetByID(ctx context.Context, id string) (*model.FeedbackSession, error)
	// UpdateProgress sets completed_combos and is_complete for a session.
	UpdateProgress(ctx context.Context, id string, completed int, isComplete bool) error
	Stats(ctx context.Context) (total, complete int64, err error)
	DeleteAll(ctx context.Context) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository instance.
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.FeedbackSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*model.FeedbackSession, error) {
	var session model.FeedbackSession
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.FeedbackSession, error) {
	var session model.FeedbackSession
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) UpdateProgress(ctx context.Context, id string, completed int, isComplete bool) error {
	return r.db.WithContext(ctx).
		Model(&model.FeedbackSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed_combos": completed,
			"is_complete":      isComplete,
		}).Error
}

func (r *sessionRepo) Stats(ctx context.Context) (total, complete int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.FeedbackSession{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&model.FeedbackSession{}).Where("is_complete = ?", true).Count(&complete).Error; err != nil {
		return 0, 0, err
	}
	return total, complete, nil
}

func (r *sessionRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.FeedbackSession{}).Error
}
