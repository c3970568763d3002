// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeMode string
type ChallengeDifficulty string

const (
	ChallengeModeStatic  ChallengeMode = "static"
	ChallengeModeDynamic ChallengeMode = "dynamic"

	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
)

type Challenge struct {
	ID          uint32              `gorm:"primarykey"`
	Title       string              `gorm:"size:200;not null"`
	Slug        string              `gorm:"size:220;unique;not null"`
	Description string              `gorm:"type:text;not null"`
	CategoryID  *uint32             `gorm:"index"`
	Category    *ChallengeCategory  `gorm:"foreignKey:CategoryID"`
	Difficulty  ChallengeDifficulty `gorm:"size:20;not null;default:'easy'"`
	Points      uint                `gorm:"not null;default:100"`
	// Flag 为评分依据，创建后不再修改，任何对外序列化都不得包含
	Flag      string        `gorm:"size:255;not null" json:"-"`
	Mode      ChallengeMode `gorm:"size:20;not null;default:'static'"`
	IsActive  bool          `gorm:"not null;default:true"`
	CreatedBy *uint32       `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Challenge) TableName() string {
	return "bambactf_challenge"
}
