// file: models/category.go
package models

import (
	"time"
)

type ChallengeCategory struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	Slug      string    `gorm:"size:120;unique;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChallengeCategory) TableName() string {
	return "bambactf_challenge_category"
}
