// file: models/submission.go
package models

import (
	"time"
)

// Submission 只增不改：正确性与得分在创建时一次性确定，
// 即使题目分值之后被修改也不回溯重算。
type Submission struct {
	ID            uint64  `gorm:"primarykey"`
	ChallengeID   uint32  `gorm:"index;not null"`
	UserID        uint32  `gorm:"index;not null"`
	TeamID        *uint32 `gorm:"index"`
	SubmittedFlag string  `gorm:"size:255;not null"`
	IsCorrect     bool
	PointsAwarded uint
	CreatedAt     time.Time
}

func (Submission) TableName() string {
	return "bambactf_submission"
}
