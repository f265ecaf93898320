package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
)

// TokenRepository is the access-token data access interface.
type TokenRepository interface {
	// BulkInsert adds codes, silently skipping ones that already exist,
	// and returns how many rows were actually added.
	BulkInsert(ctx context.Context, codes []string) (int64, error)
	GetByCode(ctx context.Context, code string) (*model.Token, error)
	// Redeem atomically flips used false→true and reports whether this
	// call performed the transition. A single conditional UPDATE; at most
	// one concurrent caller observes true for a given code.
	Redeem(ctx context.Context, code string) (bool, error)
	Stats(ctx context.Context) (total, used int64, err error)
	DeleteAll(ctx context.Context) error
}

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepo creates a TokenRepository instance.
func NewTokenRepo(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) BulkInsert(ctx context.Context, codes []string) (int64, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	tokens := make([]model.Token, len(codes))
	for i, code := range codes {
		tokens[i] = model.Token{Code: code}
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tokens)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *tokenRepo) GetByCode(ctx context.Context, code string) (*model.Token, error) {
	var token model.Token
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepo) Redeem(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Token{}).
		Where("code = ? AND used = ?", code, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *tokenRepo) Stats(ctx context.Context) (total, used int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.Token{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&model.Token{}).Where("used = ?", true).Count(&used).Error; err != nil {
		return 0, 0, err
	}
	return total, used, nil
}

func (r *tokenRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Token{}).Error
}
