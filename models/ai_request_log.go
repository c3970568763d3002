// file: models/ai_request_log.go
package models

import (
	"time"
)

// AIRequestLog AI 助手调用的审计记录，纯日志，无业务行为
type AIRequestLog struct {
	ID               uint64                 `gorm:"primarykey" json:"id"`
	UserID           uint32                 `gorm:"index;not null" json:"user_id"`
	TeamID           *uint32                `gorm:"index" json:"team_id"`
	ChallengeID      *uint32                `gorm:"index" json:"challenge_id"`
	Prompt           string                 `gorm:"type:text;not null" json:"prompt"`
	Response         string                 `gorm:"type:text" json:"response"`
	TokensPrompt     uint                   `json:"tokens_prompt"`
	TokensCompletion uint                   `json:"tokens_completion"`
	PolicyFlags      map[string]interface{} `gorm:"serializer:json" json:"policy_flags"`
	CreatedAt        time.Time              `json:"created_at"`
}

func (AIRequestLog) TableName() string {
	return "bambactf_ai_request_log"
}
