package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all repositories.
type Repository struct {
	Token   TokenRepository
	Session SessionRepository
	Rating  RatingRepository

	db *gorm.DB
}

// NewRepository creates the Repository aggregate over one gorm connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Token:   NewTokenRepo(db),
		Session: NewSessionRepo(db),
		Rating:  NewRatingRepo(db),
		db:      db,
	}
}

// Transaction runs fn against a Repository bound to a single database
// transaction, so multi-row state transitions (finalization, reset) commit
// or roll back as one unit. Without an attached database (unit tests wire
// mock repositories directly into the struct) fn runs on the receiver.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
