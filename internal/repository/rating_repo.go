package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
)

// TeacherSummaryRow is one aggregated (teacher, subject) result.
type TeacherSummaryRow struct {
	Teacher       string
	Subject       string
	FeedbackCount int64
	AvgQ1         float64
	AvgQ2         float64
	AvgQ3         float64
	AvgQ4         float64
	AvgQ5         float64
	AvgQ6         float64
	AvgQ7         float64
	AvgQ8         float64
	AvgQ9         float64
	AvgQ10        float64
	OverallAvg    float64
}

// QuestionAverages holds the global mean per rating dimension.
type QuestionAverages struct {
	Q1  float64
	Q2  float64
	Q3  float64
	Q4  float64
	Q5  float64
	Q6  float64
	Q7  float64
	Q8  float64
	Q9  float64
	Q10 float64
}

// RatingRepository is the append-only rating store. It exposes no update
// or delete of individual rows; corrections require the full reset.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	// CompletedIndices returns the distinct combo indices already recorded
	// for a session, including rows from a crash-interrupted finalization.
	CompletedIndices(ctx context.Context, sessionID string) ([]int, error)
	// List returns ratings newest-first; teacher and subject are optional
	// equality filters.
	List(ctx context.Context, teacher, subject string) ([]model.Rating, error)
	TeacherSummary(ctx context.Context) ([]TeacherSummaryRow, error)
	// QuestionAverages returns nil without error when no ratings exist.
	QuestionAverages(ctx context.Context) (*QuestionAverages, error)
	DeleteAll(ctx context.Context) error
}

type ratingRepo struct {
	db *gorm.DB
}

// NewRatingRepo creates a RatingRepository instance.
func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepo) CompletedIndices(ctx context.Context, sessionID string) ([]int, error) {
	var indices []int
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("session_id = ?", sessionID).
		Order("combo_index").
		Pluck("combo_index", &indices).Error
	if err != nil {
		return nil, err
	}
	return indices, nil
}

func (r *ratingRepo) List(ctx context.Context, teacher, subject string) ([]model.Rating, error) {
	q := r.db.WithContext(ctx).Model(&model.Rating{})
	if teacher != "" {
		q = q.Where("teacher = ?", teacher)
	}
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	var ratings []model.Rating
	if err := q.Order("submitted_at DESC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepo) TeacherSummary(ctx context.Context) ([]TeacherSummaryRow, error) {
	var rows []TeacherSummaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			teacher,
			subject,
			COUNT(*) AS feedback_count,
			ROUND(AVG(q1), 2)  AS avg_q1,
			ROUND(AVG(q2), 2)  AS avg_q2,
			ROUND(AVG(q3), 2)  AS avg_q3,
			ROUND(AVG(q4), 2)  AS avg_q4,
			ROUND(AVG(q5), 2)  AS avg_q5,
			ROUND(AVG(q6), 2)  AS avg_q6,
			ROUND(AVG(q7), 2)  AS avg_q7,
			ROUND(AVG(q8), 2)  AS avg_q8,
			ROUND(AVG(q9), 2)  AS avg_q9,
			ROUND(AVG(q10), 2) AS avg_q10,
			ROUND((AVG(q1) + AVG(q2) + AVG(q3) + AVG(q4) + AVG(q5) +
			       AVG(q6) + AVG(q7) + AVG(q8) + AVG(q9) + AVG(q10)) / 10, 2) AS overall_avg
		FROM ratings
		GROUP BY teacher, subject
		ORDER BY overall_avg DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ratingRepo) QuestionAverages(ctx context.Context) (*QuestionAverages, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	var avgs QuestionAverages
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ROUND(AVG(q1), 2)  AS q1,
			ROUND(AVG(q2), 2)  AS q2,
			ROUND(AVG(q3), 2)  AS q3,
			ROUND(AVG(q4), 2)  AS q4,
			ROUND(AVG(q5), 2)  AS q5,
			ROUND(AVG(q6), 2)  AS q6,
			ROUND(AVG(q7), 2)  AS q7,
			ROUND(AVG(q8), 2)  AS q8,
			ROUND(AVG(q9), 2)  AS q9,
			ROUND(AVG(q10), 2) AS q10
		FROM ratings
	`).Scan(&avgs).Error
	if err != nil {
		return nil, err
	}
	return &avgs, nil
}

func (r *ratingRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Rating{}).Error
}
