package model

// Token is a single-use access code gating entry into the feedback flow.
// Codes are stored uppercase; Used flips false→true exactly once and is
// never reset except by a full data wipe.
type Token struct {
	Code string `gorm:"primaryKey;type:varchar(32)" json:"code"`
	Used bool   `gorm:"not null;default:false"      json:"used"`
}

// TableName names the table.
func (Token) TableName() string { return "tokens" }
