package dto

import "github.com/YuvrajS01/Anon-Feedback-System/internal/catalog"

// ── dashboard statistics ──

// TokenStats counts issued access tokens by redemption state.
type TokenStats struct {
	Total  int64 `json:"total"`
	Used   int64 `json:"used"`
	Unused int64 `json:"unused"`
}

// SessionStats counts feedback sessions by completion state.
type SessionStats struct {
	Total      int64 `json:"total_sessions"`
	Complete   int64 `json:"complete_sessions"`
	Incomplete int64 `json:"incomplete_sessions"`
}

// StatsResponse is the combined dashboard counter block.
type StatsResponse struct {
	Tokens   TokenStats   `json:"tokens"`
	Sessions SessionStats `json:"sessions"`
}

// TeacherSummaryRow is one aggregated (teacher, subject) line, ordered by
// OverallAvg descending. OverallAvg is the mean of the ten per-question
// means, weighting every dimension equally.
type TeacherSummaryRow struct {
	Teacher       string  `json:"teacher"`
	Subject       string  `json:"subject"`
	FeedbackCount int64   `json:"feedback_count"`
	AvgQ1         float64 `json:"avg_q1"`
	AvgQ2         float64 `json:"avg_q2"`
	AvgQ3         float64 `json:"avg_q3"`
	AvgQ4         float64 `json:"avg_q4"`
	AvgQ5         float64 `json:"avg_q5"`
	AvgQ6         float64 `json:"avg_q6"`
	AvgQ7         float64 `json:"avg_q7"`
	AvgQ8         float64 `json:"avg_q8"`
	AvgQ9         float64 `json:"avg_q9"`
	AvgQ10        float64 `json:"avg_q10"`
	OverallAvg    float64 `json:"overall_avg"`
}

// QuestionAverages holds the global per-question means.
type QuestionAverages struct {
	Q1  float64 `json:"q1"`
	Q2  float64 `json:"q2"`
	Q3  float64 `json:"q3"`
	Q4  float64 `json:"q4"`
	Q5  float64 `json:"q5"`
	Q6  float64 `json:"q6"`
	Q7  float64 `json:"q7"`
	Q8  float64 `json:"q8"`
	Q9  float64 `json:"q9"`
	Q10 float64 `json:"q10"`
}

// ── token administration ──

// GenerateTokensRequest bulk-creates access tokens.
type GenerateTokensRequest struct {
	Count  int `json:"count"  binding:"required,min=1,max=1000"`
	Length int `json:"length" binding:"omitempty,min=4,max=32"`
}

// GenerateTokensResponse returns what was actually added. Added may be
// lower than len(Codes) when a code already existed.
type GenerateTokensResponse struct {
	Requested int      `json:"requested"`
	Added     int      `json:"added"`
	Codes     []string `json:"codes"`
}

// ── catalog administration ──

// CatalogResponse is the catalog document as currently on disk.
type CatalogResponse struct {
	Combos    []catalog.Combo `json:"teacher_subject_combos"`
	Period    catalog.Period  `json:"period"`
	Questions []string        `json:"questions"`
}

// UpdateCatalogRequest replaces combos and/or the academic period.
type UpdateCatalogRequest struct {
	Combos *[]ComboInput `json:"teacher_subject_combos"`
	Period *PeriodInput  `json:"period"`
}

// ComboInput is one combo supplied by the operator.
type ComboInput struct {
	Teacher string `json:"teacher" binding:"required"`
	Subject string `json:"subject" binding:"required"`
}

// PeriodInput is the academic period supplied by the operator.
type PeriodInput struct {
	Semester int    `json:"semester" binding:"required,min=1,max=12"`
	Session  string `json:"session"  binding:"required"`
	Branch   string `json:"branch"   binding:"required"`
}

// SaveTemplateRequest stores a named catalog preset.
type SaveTemplateRequest struct {
	Name     string       `json:"name"     binding:"required,min=1,max=64"`
	Semester int          `json:"semester" binding:"required,min=1,max=12"`
	Session  string       `json:"session"  binding:"required"`
	Branch   string       `json:"branch"   binding:"required"`
	Combos   []ComboInput `json:"teacher_subject_combos" binding:"required,min=1,dive"`
}
