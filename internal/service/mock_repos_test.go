package service

import (
	"context"
	"math"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
)

// ── Mock TokenRepository ──

type mockTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.Token
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*model.Token)}
}

func (m *mockTokenRepo) BulkInsert(_ context.Context, codes []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var added int64
	for _, code := range codes {
		if _, exists := m.tokens[code]; exists {
			continue
		}
		m.tokens[code] = &model.Token{Code: code}
		added++
	}
	return added, nil
}

func (m *mockTokenRepo) GetByCode(_ context.Context, code string) (*model.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[code]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTokenRepo) Redeem(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[code]
	if !ok || t.Used {
		return false, nil
	}
	t.Used = true
	return true, nil
}

func (m *mockTokenRepo) Stats(_ context.Context) (total, used int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		total++
		if t.Used {
			used++
		}
	}
	return total, used, nil
}

func (m *mockTokenRepo) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = make(map[string]*model.Token)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.FeedbackSession // key: session ID
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.FeedbackSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.FeedbackSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == session.Token {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *mockSessionRepo) GetByToken(_ context.Context, token string) (*model.FeedbackSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.FeedbackSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) UpdateProgress(_ context.Context, id string, completed int, isComplete bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.CompletedCombos = completed
		s.IsComplete = isComplete
	}
	return nil
}

func (m *mockSessionRepo) Stats(_ context.Context) (total, complete int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		total++
		if s.IsComplete {
			complete++
		}
	}
	return total, complete, nil
}

func (m *mockSessionRepo) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*model.FeedbackSession)
	return nil
}

// ── Mock RatingRepository ──

type mockRatingRepo struct {
	mu      sync.Mutex
	ratings []model.Rating
}

func newMockRatingRepo() *mockRatingRepo {
	return &mockRatingRepo{}
}

func (m *mockRatingRepo) Create(_ context.Context, rating *model.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.ratings {
		if r.SessionID == rating.SessionID && r.ComboIndex == rating.ComboIndex {
			return gorm.ErrDuplicatedKey
		}
	}
	m.ratings = append(m.ratings, *rating)
	return nil
}

func (m *mockRatingRepo) CompletedIndices(_ context.Context, sessionID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var indices []int
	for _, r := range m.ratings {
		if r.SessionID == sessionID {
			indices = append(indices, r.ComboIndex)
		}
	}
	sort.Ints(indices)
	return indices, nil
}

func (m *mockRatingRepo) List(_ context.Context, teacher, subject string) ([]model.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Rating
	for _, r := range m.ratings {
		if teacher != "" && r.Teacher != teacher {
			continue
		}
		if subject != "" && r.Subject != subject {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockRatingRepo) TeacherSummary(_ context.Context) ([]repository.TeacherSummaryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type key struct{ teacher, subject string }
	type acc struct {
		count int64
		sums  [model.QuestionCount]float64
	}
	groups := make(map[key]*acc)
	for _, r := range m.ratings {
		k := key{r.Teacher, r.Subject}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.count++
		for i, score := range r.Scores() {
			a.sums[i] += float64(score)
		}
	}

	var rows []repository.TeacherSummaryRow
	for k, a := range groups {
		var avgs [model.QuestionCount]float64
		var overall float64
		for i, sum := range a.sums {
			avgs[i] = round2(sum / float64(a.count))
			overall += sum / float64(a.count)
		}
		rows = append(rows, repository.TeacherSummaryRow{
			Teacher:       k.teacher,
			Subject:       k.subject,
			FeedbackCount: a.count,
			AvgQ1:         avgs[0],
			AvgQ2:         avgs[1],
			AvgQ3:         avgs[2],
			AvgQ4:         avgs[3],
			AvgQ5:         avgs[4],
			AvgQ6:         avgs[5],
			AvgQ7:         avgs[6],
			AvgQ8:         avgs[7],
			AvgQ9:         avgs[8],
			AvgQ10:        avgs[9],
			OverallAvg:    round2(overall / model.QuestionCount),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].OverallAvg > rows[j].OverallAvg
	})
	return rows, nil
}

func (m *mockRatingRepo) QuestionAverages(_ context.Context) (*repository.QuestionAverages, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ratings) == 0 {
		return nil, nil
	}
	var sums [model.QuestionCount]float64
	for _, r := range m.ratings {
		for i, score := range r.Scores() {
			sums[i] += float64(score)
		}
	}
	n := float64(len(m.ratings))
	return &repository.QuestionAverages{
		Q1: round2(sums[0] / n), Q2: round2(sums[1] / n),
		Q3: round2(sums[2] / n), Q4: round2(sums[3] / n),
		Q5: round2(sums[4] / n), Q6: round2(sums[5] / n),
		Q7: round2(sums[6] / n), Q8: round2(sums[7] / n),
		Q9: round2(sums[8] / n), Q10: round2(sums[9] / n),
	}, nil
}

func (m *mockRatingRepo) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings = nil
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
