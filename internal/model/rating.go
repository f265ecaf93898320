package model

import "time"

// QuestionCount is the fixed number of numeric rating dimensions.
const QuestionCount = 10

// Rating is one immutable submitted response to one combo. Rows are only
// ever inserted; corrections require a full data wipe, which keeps already
// collected analytics tamper-proof.
//
// (session_id, combo_index) is unique: a combo is rated at most once per
// session.
type Rating struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"               json:"id"`
	SessionID  string `gorm:"column:session_id;not null;uniqueIndex:uq_ratings_session_combo" json:"session_id"`
	ComboIndex int    `gorm:"not null;uniqueIndex:uq_ratings_session_combo" json:"combo_index"`
	Teacher    string `gorm:"not null"                                  json:"teacher"`
	Subject    string `gorm:"not null"                                  json:"subject"`

	// Academic period in effect at submission time.
	Semester        int    `json:"semester"`
	AcademicSession string `json:"academic_session"`
	Branch          string `json:"branch"`

	Q1  int `gorm:"not null" json:"q1"`
	Q2  int `gorm:"not null" json:"q2"`
	Q3  int `gorm:"not null" json:"q3"`
	Q4  int `gorm:"not null" json:"q4"`
	Q5  int `gorm:"not null" json:"q5"`
	Q6  int `gorm:"not null" json:"q6"`
	Q7  int `gorm:"not null" json:"q7"`
	Q8  int `gorm:"not null" json:"q8"`
	Q9  int `gorm:"not null" json:"q9"`
	Q10 int `gorm:"not null" json:"q10"`

	Comment     string    `json:"comment"`
	SubmittedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"submitted_at"`
}

// TableName names the table.
func (Rating) TableName() string { return "ratings" }

// Scores returns the ten rating values in question order.
func (r *Rating) Scores() [QuestionCount]int {
	return [QuestionCount]int{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5, r.Q6, r.Q7, r.Q8, r.Q9, r.Q10}
}

// SetScores assigns the ten rating values in question order.
func (r *Rating) SetScores(scores []int) {
	r.Q1, r.Q2, r.Q3, r.Q4, r.Q5 = scores[0], scores[1], scores[2], scores[3], scores[4]
	r.Q6, r.Q7, r.Q8, r.Q9, r.Q10 = scores[5], scores[6], scores[7], scores[8], scores[9]
}
