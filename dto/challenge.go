// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	CategoryID  *uint32 `json:"category_id"`
	Difficulty  string  `json:"difficulty"` // easy / medium / hard
	Points      uint    `json:"points"`
	Flag        string  `json:"flag"` // 只进不出：仅在创建/更新请求中出现
	Mode        string  `json:"mode"` // static / dynamic
	IsActive    *bool   `json:"is_active"`
}

// Normalize 清洗与默认值处理
func (r *CreateChallengeReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Difficulty == "" {
		r.Difficulty = "easy"
	}
	if r.Mode == "" {
		r.Mode = "static"
	}
	if r.Points == 0 {
		r.Points = 100
	}
}

type UpdateChallengeReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *uint32 `json:"category_id"`
	Difficulty  *string `json:"difficulty"`
	Points      *uint   `json:"points"`
	Mode        *string `json:"mode"`
	IsActive    *bool   `json:"is_active"`
}

type SubmitFlagReq struct {
	SubmittedFlag string `json:"submitted_flag"`
}

type StartInstanceReq struct {
	TTLMinutes *int `json:"ttl_minutes"`
}

// ========== 响应 DTO ==========
// Flag 字段在任何响应结构中都不存在，序列化边界上保证密文不外泄

type ChallengeItemResp struct {
	ID          uint32  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Category    *string `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Points      uint    `json:"points"`
	Mode        string  `json:"mode"`
	IsActive    bool    `json:"is_active"`
}

type ChallengeDetailResp struct {
	ID          uint32  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	CategoryID  *uint32 `json:"category_id"`
	Difficulty  string  `json:"difficulty"`
	Points      uint    `json:"points"`
	Mode        string  `json:"mode"`
	IsActive    bool    `json:"is_active"`
	CreatedBy   *uint32 `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
