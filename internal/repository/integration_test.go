//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening test database failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&model.Token{}, &model.FeedbackSession{}, &model.Rating{}); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func allScores(v int) []int {
	scores := make([]int, model.QuestionCount)
	for i := range scores {
		scores[i] = v
	}
	return scores
}

func TestTokenRepo_BulkInsertSkipsExisting(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	added, err := repo.Token.BulkInsert(ctx, []string{"AA11A1", "BB22B2"})
	if err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}

	added, err = repo.Token.BulkInsert(ctx, []string{"BB22B2", "CC33C3"})
	if err != nil {
		t.Fatalf("BulkInsert with overlap failed: %v", err)
	}
	if added != 1 {
		t.Errorf("expected 1 added on overlap, got %d", added)
	}
}

func TestTokenRepo_RedeemExactlyOnce(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Token.BulkInsert(ctx, []string{"AA11A1"}); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			redeemed, err := repo.Token.Redeem(ctx, "AA11A1")
			if err != nil {
				t.Errorf("Redeem failed: %v", err)
				return
			}
			results[i] = redeemed
		}(i)
	}
	wg.Wait()

	var wins int
	for _, redeemed := range results {
		if redeemed {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("exactly one concurrent Redeem should win, got %d", wins)
	}

	token, err := repo.Token.GetByCode(ctx, "AA11A1")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if !token.Used {
		t.Error("token should be marked used")
	}
}

func TestSessionRepo_UniqueTokenConstraint(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	first := &model.FeedbackSession{ID: "s1", Token: "AA11A1", TotalCombos: 3}
	if err := repo.Session.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second := &model.FeedbackSession{ID: "s2", Token: "AA11A1", TotalCombos: 3}
	err := repo.Session.Create(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected gorm.ErrDuplicatedKey for a second session on one token, got: %v", err)
	}
}

func TestRatingRepo_UniqueStepConstraint(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Session.Create(ctx, &model.FeedbackSession{ID: "s1", Token: "AA11A1", TotalCombos: 3}); err != nil {
		t.Fatalf("Create session failed: %v", err)
	}

	r1 := &model.Rating{ID: "r1", SessionID: "s1", ComboIndex: 0, Teacher: "Dr. Sharma", Subject: "Mathematics"}
	r1.SetScores(allScores(5))
	if err := repo.Rating.Create(ctx, r1); err != nil {
		t.Fatalf("Create rating failed: %v", err)
	}

	dup := &model.Rating{ID: "r2", SessionID: "s1", ComboIndex: 0, Teacher: "Dr. Sharma", Subject: "Mathematics"}
	dup.SetScores(allScores(3))
	if err := repo.Rating.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected gorm.ErrDuplicatedKey for a duplicate step, got: %v", err)
	}
}

func TestRatingRepo_CompletedIndicesOrdered(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	for _, idx := range []int{2, 0, 1} {
		r := &model.Rating{ID: fmt.Sprintf("r%d", idx), SessionID: "s1", ComboIndex: idx, Teacher: "T", Subject: "S"}
		r.SetScores(allScores(4))
		if err := repo.Rating.Create(ctx, r); err != nil {
			t.Fatalf("Create rating failed: %v", err)
		}
	}

	indices, err := repo.Rating.CompletedIndices(ctx, "s1")
	if err != nil {
		t.Fatalf("CompletedIndices failed: %v", err)
	}
	if len(indices) != 3 || indices[0] != 0 || indices[1] != 1 || indices[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", indices)
	}
}

func TestRatingRepo_TeacherSummarySQL(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	r1 := &model.Rating{ID: "r1", SessionID: "s1", ComboIndex: 0, Teacher: "Dr. Sharma", Subject: "Mathematics"}
	r1.SetScores(allScores(5))
	r2 := &model.Rating{ID: "r2", SessionID: "s2", ComboIndex: 0, Teacher: "Dr. Sharma", Subject: "Mathematics"}
	r2.SetScores(allScores(4))
	r3 := &model.Rating{ID: "r3", SessionID: "s1", ComboIndex: 1, Teacher: "Prof. Gupta", Subject: "Physics"}
	r3.SetScores(allScores(3))
	for _, r := range []*model.Rating{r1, r2, r3} {
		if err := repo.Rating.Create(ctx, r); err != nil {
			t.Fatalf("Create rating failed: %v", err)
		}
	}

	rows, err := repo.Rating.TeacherSummary(ctx)
	if err != nil {
		t.Fatalf("TeacherSummary failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Teacher != "Dr. Sharma" || rows[0].OverallAvg != 4.5 {
		t.Errorf("expected Dr. Sharma with overall 4.5 first, got %s %v", rows[0].Teacher, rows[0].OverallAvg)
	}
	if rows[0].FeedbackCount != 2 {
		t.Errorf("expected 2 submissions, got %d", rows[0].FeedbackCount)
	}
	if rows[1].OverallAvg != 3.0 {
		t.Errorf("expected 3.0 second, got %v", rows[1].OverallAvg)
	}
}

func TestRatingRepo_QuestionAveragesEmpty(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))

	avgs, err := repo.Rating.QuestionAverages(context.Background())
	if err != nil {
		t.Fatalf("QuestionAverages failed: %v", err)
	}
	if avgs != nil {
		t.Errorf("expected nil for an empty store, got %+v", avgs)
	}
}

func TestRepository_TransactionRollback(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Token.BulkInsert(ctx, []string{"AA11A1"}); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	sentinel := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Token.Redeem(ctx, "AA11A1"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the sentinel error, got: %v", err)
	}

	token, err := repo.Token.GetByCode(ctx, "AA11A1")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if token.Used {
		t.Error("rolled back Redeem must not persist")
	}
}

func TestRepository_TransactionCommit(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Token.BulkInsert(ctx, []string{"AA11A1"}); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
	if err := repo.Session.Create(ctx, &model.FeedbackSession{ID: "s1", Token: "AA11A1", TotalCombos: 1}); err != nil {
		t.Fatalf("Create session failed: %v", err)
	}

	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Token.Redeem(ctx, "AA11A1"); err != nil {
			return err
		}
		return tx.Session.UpdateProgress(ctx, "s1", 1, true)
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	token, _ := repo.Token.GetByCode(ctx, "AA11A1")
	if !token.Used {
		t.Error("committed Redeem should persist")
	}
	session, _ := repo.Session.GetByID(ctx, "s1")
	if !session.IsComplete {
		t.Error("committed UpdateProgress should persist")
	}
}
