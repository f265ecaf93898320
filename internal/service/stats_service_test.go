package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
)

func setupTestStatsService() (StatsService, *mockTokenRepo, *mockSessionRepo, *mockRatingRepo) {
	tokenRepo := newMockTokenRepo()
	sessionRepo := newMockSessionRepo()
	ratingRepo := newMockRatingRepo()
	repo := &repository.Repository{
		Token:   tokenRepo,
		Session: sessionRepo,
		Rating:  ratingRepo,
	}
	return NewStatsService(repo, zap.NewNop()), tokenRepo, sessionRepo, ratingRepo
}

func addRating(ratingRepo *mockRatingRepo, id, sessionID string, idx int, teacher, subject string, scores []int) {
	r := &model.Rating{
		ID:         id,
		SessionID:  sessionID,
		ComboIndex: idx,
		Teacher:    teacher,
		Subject:    subject,
	}
	r.SetScores(scores)
	ratingRepo.Create(context.Background(), r)
}

func TestStats_EmptyStore(t *testing.T) {
	svc, _, _, _ := setupTestStatsService()

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats on an empty store should succeed: %v", err)
	}
	if stats.Tokens.Total != 0 || stats.Tokens.Used != 0 || stats.Tokens.Unused != 0 {
		t.Errorf("expected zeroed token stats, got %+v", stats.Tokens)
	}
	if stats.Sessions.Total != 0 || stats.Sessions.Complete != 0 {
		t.Errorf("expected zeroed session stats, got %+v", stats.Sessions)
	}
}

func TestStats_Counters(t *testing.T) {
	svc, tokenRepo, sessionRepo, _ := setupTestStatsService()
	tokenRepo.BulkInsert(context.Background(), []string{"AA11A1", "BB22B2", "CC33C3"})
	tokenRepo.Redeem(context.Background(), "AA11A1")
	sessionRepo.Create(context.Background(), &model.FeedbackSession{ID: "s1", Token: "AA11A1", TotalCombos: 2, IsComplete: true})
	sessionRepo.Create(context.Background(), &model.FeedbackSession{ID: "s2", Token: "BB22B2", TotalCombos: 2})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats should succeed: %v", err)
	}
	if stats.Tokens.Total != 3 || stats.Tokens.Used != 1 || stats.Tokens.Unused != 2 {
		t.Errorf("wrong token stats: %+v", stats.Tokens)
	}
	if stats.Sessions.Total != 2 || stats.Sessions.Complete != 1 || stats.Sessions.Incomplete != 1 {
		t.Errorf("wrong session stats: %+v", stats.Sessions)
	}
}

func TestTeacherSummary_Aggregation(t *testing.T) {
	svc, _, _, ratingRepo := setupTestStatsService()

	all5 := []int{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	all3 := []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}
	addRating(ratingRepo, "r1", "s1", 0, "Dr. Sharma", "Mathematics", all5)
	addRating(ratingRepo, "r2", "s2", 0, "Dr. Sharma", "Mathematics", all3)
	addRating(ratingRepo, "r3", "s1", 1, "Prof. Gupta", "Physics", all3)

	rows, err := svc.TeacherSummary(context.Background())
	if err != nil {
		t.Fatalf("TeacherSummary should succeed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// ordered by overall average descending
	if rows[0].Teacher != "Dr. Sharma" {
		t.Errorf("expected Dr. Sharma first, got %s", rows[0].Teacher)
	}
	if rows[0].FeedbackCount != 2 {
		t.Errorf("expected 2 submissions for Dr. Sharma, got %d", rows[0].FeedbackCount)
	}
	if rows[0].AvgQ1 != 4.0 || rows[0].OverallAvg != 4.0 {
		t.Errorf("expected averages of 4.0, got q1=%v overall=%v", rows[0].AvgQ1, rows[0].OverallAvg)
	}
	if rows[1].OverallAvg != 3.0 {
		t.Errorf("expected 3.0 for Prof. Gupta, got %v", rows[1].OverallAvg)
	}
}

func TestTeacherSummary_Empty(t *testing.T) {
	svc, _, _, _ := setupTestStatsService()

	rows, err := svc.TeacherSummary(context.Background())
	if err != nil {
		t.Fatalf("TeacherSummary on an empty store should succeed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestQuestionAverages(t *testing.T) {
	svc, _, _, ratingRepo := setupTestStatsService()
	addRating(ratingRepo, "r1", "s1", 0, "Dr. Sharma", "Mathematics",
		[]int{1, 2, 3, 4, 5, 5, 4, 3, 2, 1})
	addRating(ratingRepo, "r2", "s2", 0, "Dr. Sharma", "Mathematics",
		[]int{2, 2, 3, 4, 5, 5, 4, 3, 2, 2})

	avgs, err := svc.QuestionAverages(context.Background())
	if err != nil {
		t.Fatalf("QuestionAverages should succeed: %v", err)
	}
	if avgs.Q1 != 1.5 {
		t.Errorf("expected Q1=1.5, got %v", avgs.Q1)
	}
	if avgs.Q5 != 5.0 {
		t.Errorf("expected Q5=5.0, got %v", avgs.Q5)
	}
}

func TestQuestionAverages_EmptyStore(t *testing.T) {
	svc, _, _, _ := setupTestStatsService()

	avgs, err := svc.QuestionAverages(context.Background())
	if err != nil {
		t.Fatalf("QuestionAverages on an empty store should succeed: %v", err)
	}
	if avgs == nil {
		t.Fatal("expected zero-valued averages, got nil")
	}
	if avgs.Q1 != 0 {
		t.Errorf("expected zeroed averages, got Q1=%v", avgs.Q1)
	}
}

func TestListRatings_Filters(t *testing.T) {
	svc, _, _, ratingRepo := setupTestStatsService()
	all3 := []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}
	addRating(ratingRepo, "r1", "s1", 0, "Dr. Sharma", "Mathematics", all3)
	addRating(ratingRepo, "r2", "s1", 1, "Prof. Gupta", "Physics", all3)
	addRating(ratingRepo, "r3", "s2", 0, "Dr. Sharma", "Mathematics", all3)

	byTeacher, err := svc.ListRatings(context.Background(), "Dr. Sharma", "")
	if err != nil {
		t.Fatalf("ListRatings should succeed: %v", err)
	}
	if len(byTeacher) != 2 {
		t.Errorf("expected 2 ratings for Dr. Sharma, got %d", len(byTeacher))
	}

	bySubject, err := svc.ListRatings(context.Background(), "", "Physics")
	if err != nil {
		t.Fatalf("ListRatings should succeed: %v", err)
	}
	if len(bySubject) != 1 {
		t.Errorf("expected 1 rating for Physics, got %d", len(bySubject))
	}

	all, err := svc.ListRatings(context.Background(), "", "")
	if err != nil {
		t.Fatalf("ListRatings should succeed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 ratings unfiltered, got %d", len(all))
	}
}

func TestReset_WipesEverything(t *testing.T) {
	svc, tokenRepo, sessionRepo, ratingRepo := setupTestStatsService()
	tokenRepo.BulkInsert(context.Background(), []string{"AA11A1"})
	sessionRepo.Create(context.Background(), &model.FeedbackSession{ID: "s1", Token: "AA11A1", TotalCombos: 1})
	addRating(ratingRepo, "r1", "s1", 0, "Dr. Sharma", "Mathematics",
		[]int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3})

	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("Reset should succeed: %v", err)
	}
	if len(tokenRepo.tokens) != 0 {
		t.Error("tokens should be wiped")
	}
	if len(sessionRepo.sessions) != 0 {
		t.Error("sessions should be wiped")
	}
	if len(ratingRepo.ratings) != 0 {
		t.Error("ratings should be wiped")
	}
}
