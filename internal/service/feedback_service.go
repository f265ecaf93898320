package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/catalog"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/tokengen"
)

var (
	ErrTokenNotUsable       = errors.New("token invalid or already used")
	ErrCatalogEmpty         = errors.New("no teacher/subject combos configured")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionComplete      = errors.New("session already complete")
	ErrSessionTokenMismatch = errors.New("token does not belong to this session")
	ErrIndexOutOfRange      = errors.New("combo index out of range")
	ErrStepAlreadySubmitted = errors.New("combo already submitted for this session")
)

// FeedbackService drives a respondent's progress through the combo catalog:
// one session per token, one rating per combo index, token redeemed only
// when every index is covered.
//
// The catalog snapshot is loaded by the caller once per request and passed
// in explicitly; the service never caches catalog state. A session's
// total_combos stays frozen at its creation-time value even when the live
// catalog has since changed size.
type FeedbackService interface {
	// StartSession creates the session for an unused token, or resumes the
	// existing one. A used token is rejected; progress is recomputed from
	// the rating store on every call.
	StartSession(ctx context.Context, code string, snap *catalog.Snapshot) (*dto.SessionResponse, error)
	// SubmitStep appends the rating for one combo index and advances the
	// session, finalizing it when the last index is covered.
	SubmitStep(ctx context.Context, req *dto.SubmitStepRequest, snap *catalog.Snapshot) (*dto.SubmitStepResponse, error)
}

type feedbackService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFeedbackService creates a FeedbackService instance.
func NewFeedbackService(repo *repository.Repository, logger *zap.Logger) FeedbackService {
	return &feedbackService{repo: repo, logger: logger}
}

// ────────────────────── StartSession ──────────────────────

func (s *feedbackService) StartSession(ctx context.Context, code string, snap *catalog.Snapshot) (*dto.SessionResponse, error) {
	code = tokengen.Normalize(code)

	token, err := s.repo.Token.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotUsable
		}
		s.logger.Error("querying token failed", zap.Error(err))
		return nil, err
	}
	if token.Used {
		return nil, ErrTokenNotUsable
	}

	session, err := s.repo.Session.GetByToken(ctx, code)
	switch {
	case err == nil:
		// resume below
	case errors.Is(err, gorm.ErrRecordNotFound):
		session, err = s.createSession(ctx, code, snap)
		if err != nil {
			return nil, err
		}
	default:
		s.logger.Error("querying session failed", zap.Error(err))
		return nil, err
	}

	if session.IsComplete {
		// complete sessions are terminal even if the token row escaped
		// redemption somehow
		return nil, ErrTokenNotUsable
	}

	return s.buildSessionResponse(ctx, session, snap)
}

func (s *feedbackService) createSession(ctx context.Context, code string, snap *catalog.Snapshot) (*model.FeedbackSession, error) {
	total := len(snap.Combos)
	if total == 0 {
		return nil, ErrCatalogEmpty
	}

	session := &model.FeedbackSession{
		ID:          uuid.New().String(),
		Token:       code,
		TotalCombos: total,
	}
	err := s.repo.Session.Create(ctx, session)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent start for the same token; the
		// unique token constraint guarantees a single winner
		return s.repo.Session.GetByToken(ctx, code)
	}
	s.logger.Error("creating session failed", zap.Error(err))
	return nil, err
}

// ────────────────────── SubmitStep ──────────────────────

func (s *feedbackService) SubmitStep(ctx context.Context, req *dto.SubmitStepRequest, snap *catalog.Snapshot) (*dto.SubmitStepResponse, error) {
	code := tokengen.Normalize(req.Token)

	session, err := s.repo.Session.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("querying session failed", zap.Error(err))
		return nil, err
	}
	if session.Token != code {
		return nil, ErrSessionTokenMismatch
	}
	if session.IsComplete {
		return nil, ErrSessionComplete
	}

	token, err := s.repo.Token.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotUsable
		}
		s.logger.Error("querying token failed", zap.Error(err))
		return nil, err
	}
	if token.Used {
		return nil, ErrTokenNotUsable
	}

	idx := *req.ComboIndex
	if idx < 0 || idx >= session.TotalCombos {
		return nil, ErrIndexOutOfRange
	}

	done, err := s.completedSet(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if _, dup := done[idx]; dup {
		return nil, ErrStepAlreadySubmitted
	}

	s.warnOnCatalogMismatch(session, snap)

	rating := &model.Rating{
		ID:              uuid.New().String(),
		SessionID:       session.ID,
		ComboIndex:      idx,
		Semester:        snap.Period.Semester,
		AcademicSession: snap.Period.Session,
		Branch:          snap.Period.Branch,
		Comment:         req.Comment,
	}
	if idx < len(snap.Combos) {
		rating.Teacher = snap.Combos[idx].Teacher
		rating.Subject = snap.Combos[idx].Subject
	}
	rating.SetScores(req.Ratings)

	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// racing duplicate for the same step; the unique
			// (session_id, combo_index) constraint kept it out
			return nil, ErrStepAlreadySubmitted
		}
		s.logger.Error("saving rating failed", zap.Error(err))
		return nil, err
	}
	done[idx] = struct{}{}

	completed := len(done)
	if completed >= session.TotalCombos {
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
		return &dto.SubmitStepResponse{
			Complete:        true,
			CompletedCombos: session.TotalCombos,
			TotalCombos:     session.TotalCombos,
		}, nil
	}

	if err := s.repo.Session.UpdateProgress(ctx, session.ID, completed, false); err != nil {
		s.logger.Error("updating session progress failed", zap.Error(err))
		return nil, err
	}

	next := nextIndex(done, session.TotalCombos)
	return &dto.SubmitStepResponse{
		NextIndex:       &next,
		CompletedCombos: completed,
		TotalCombos:     session.TotalCombos,
	}, nil
}

// ────────────────────── helpers ──────────────────────

// finalize redeems the token and seals the session as one transaction.
// A failed redeem here means the token was consumed outside this session
// (data corruption); the session is sealed anyway so the respondent still
// gets their confirmation, and the inconsistency is logged.
func (s *feedbackService) finalize(ctx context.Context, session *model.FeedbackSession) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		redeemed, err := tx.Token.Redeem(ctx, session.Token)
		if err != nil {
			return err
		}
		if !redeemed {
			s.logger.Warn("finalization found its token already redeemed")
		}
		return tx.Session.UpdateProgress(ctx, session.ID, session.TotalCombos, true)
	})
	if err != nil {
		s.logger.Error("finalizing session failed", zap.Error(err))
	}
	return err
}

func (s *feedbackService) completedSet(ctx context.Context, sessionID string) (map[int]struct{}, error) {
	indices, err := s.repo.Rating.CompletedIndices(ctx, sessionID)
	if err != nil {
		s.logger.Error("querying completed indices failed", zap.Error(err))
		return nil, err
	}
	done := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		done[i] = struct{}{}
	}
	return done, nil
}

// buildSessionResponse recomputes progress from the rating store, repairs
// a stale completed_combos counter, and finalizes a session that a crash
// left fully rated but unsealed.
func (s *feedbackService) buildSessionResponse(ctx context.Context, session *model.FeedbackSession, snap *catalog.Snapshot) (*dto.SessionResponse, error) {
	done, err := s.completedSet(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	s.warnOnCatalogMismatch(session, snap)

	completed := len(done)
	if completed >= session.TotalCombos {
		// crash recovery: every step is rated but the session was never
		// sealed, so trigger finalization now instead of erroring
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
		return &dto.SessionResponse{
			SessionID:       session.ID,
			TotalCombos:     session.TotalCombos,
			CompletedCombos: session.TotalCombos,
			Complete:        true,
			Steps:           s.buildSteps(session, snap, done),
			Questions:       catalog.Questions,
		}, nil
	}

	if completed != session.CompletedCombos {
		if err := s.repo.Session.UpdateProgress(ctx, session.ID, completed, false); err != nil {
			s.logger.Error("repairing session progress failed", zap.Error(err))
			return nil, err
		}
	}

	next := nextIndex(done, session.TotalCombos)
	return &dto.SessionResponse{
		SessionID:       session.ID,
		TotalCombos:     session.TotalCombos,
		CompletedCombos: completed,
		NextIndex:       &next,
		Steps:           s.buildSteps(session, snap, done),
		Questions:       catalog.Questions,
	}, nil
}

func (s *feedbackService) buildSteps(session *model.FeedbackSession, snap *catalog.Snapshot, done map[int]struct{}) []dto.ComboStep {
	steps := make([]dto.ComboStep, session.TotalCombos)
	for i := range steps {
		steps[i] = dto.ComboStep{Index: i}
		if i < len(snap.Combos) {
			steps[i].Teacher = snap.Combos[i].Teacher
			steps[i].Subject = snap.Combos[i].Subject
		}
		if _, ok := done[i]; ok {
			steps[i].Done = true
		}
	}
	return steps
}

// warnOnCatalogMismatch flags a live catalog whose length no longer matches
// the session's frozen total. The session keeps its frozen total_combos;
// renumbering recorded combo indices against an edited catalog would
// corrupt their meaning.
func (s *feedbackService) warnOnCatalogMismatch(session *model.FeedbackSession, snap *catalog.Snapshot) {
	if len(snap.Combos) != session.TotalCombos {
		s.logger.Warn("live catalog size differs from session snapshot",
			zap.Int("session_total", session.TotalCombos),
			zap.Int("catalog_total", len(snap.Combos)),
		)
	}
}

// nextIndex returns the lowest index in [0, total) not yet completed.
func nextIndex(done map[int]struct{}, total int) int {
	for i := 0; i < total; i++ {
		if _, ok := done[i]; !ok {
			return i
		}
	}
	return total
}
