// file: dto/instance.go
package dto

// InstanceResp 实例的对外视图。
// access_token / orchestrator_ref 为内部字段，永不回显。
type InstanceResp struct {
	ID          uint32  `json:"id"`
	ChallengeID uint32  `json:"challenge_id"`
	UserID      uint32  `json:"user_id"`
	TeamID      *uint32 `json:"team_id"`
	Status      string  `json:"status"`
	StartedAt   string  `json:"started_at"`
	ExpiresAt   string  `json:"expires_at"`
	EndpointURL string  `json:"endpoint_url"`
}

type SubmissionResp struct {
	ID            uint64  `json:"id"`
	ChallengeID   uint32  `json:"challenge_id"`
	UserID        uint32  `json:"user_id"`
	TeamID        *uint32 `json:"team_id"`
	SubmittedFlag string  `json:"submitted_flag"`
	IsCorrect     bool    `json:"is_correct"`
	PointsAwarded uint    `json:"points_awarded"`
	CreatedAt     string  `json:"created_at"`
}
