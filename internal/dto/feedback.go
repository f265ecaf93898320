package dto

// ── respondent flow ──

// VerifyTokenRequest checks an access token at the entry point.
type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required,max=64"`
}

// VerifyTokenResponse reports whether the token can start or resume a session.
type VerifyTokenResponse struct {
	Valid bool `json:"valid"`
}

// StartSessionRequest creates or resumes the session for a token.
type StartSessionRequest struct {
	Token string `json:"token" binding:"required,max=64"`
}

// ComboStep is one catalog entry as presented to the respondent.
type ComboStep struct {
	Index   int    `json:"index"`
	Teacher string `json:"teacher"`
	Subject string `json:"subject"`
	Done    bool   `json:"done"`
}

// SessionResponse describes session progress and the steps ahead.
type SessionResponse struct {
	SessionID       string      `json:"session_id"`
	TotalCombos     int         `json:"total_combos"`
	CompletedCombos int         `json:"completed_combos"`
	Complete        bool        `json:"complete"`
	NextIndex       *int        `json:"next_index,omitempty"`
	Steps           []ComboStep `json:"steps"`
	Questions       []string    `json:"questions"`
}

// SubmitStepRequest submits the ratings for one combo step.
// ComboIndex is a pointer so index 0 survives required-field binding.
type SubmitStepRequest struct {
	SessionID  string `json:"session_id"  binding:"required"`
	Token      string `json:"token"       binding:"required,max=64"`
	ComboIndex *int   `json:"combo_index" binding:"required"`
	Ratings    []int  `json:"ratings"     binding:"required,len=10,dive,min=1,max=10"`
	Comment    string `json:"comment"     binding:"max=2000"`
}

// SubmitStepResponse reports the next step, or completion.
type SubmitStepResponse struct {
	Complete        bool `json:"complete"`
	NextIndex       *int `json:"next_index,omitempty"`
	CompletedCombos int  `json:"completed_combos"`
	TotalCombos     int  `json:"total_combos"`
}
