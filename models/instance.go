// file: models/instance.go
package models

import (
	"time"
)

type InstanceStatus string

const (
	InstanceStatusProvisioning InstanceStatus = "provisioning"
	InstanceStatusActive       InstanceStatus = "active"
	InstanceStatusExpired      InstanceStatus = "expired"
	InstanceStatusTerminated   InstanceStatus = "terminated"
)

// ChallengeInstance 对应 bambactf_challenge_instance 表，
// 一条记录表示一名用户对某道题目环境的限时访问授权。
// 状态机：provisioning → active → expired / terminated，
// 当前只有显式销毁会触发 terminated，其余流转由外部编排器负责。
type ChallengeInstance struct {
	ID          uint32         `gorm:"primarykey"`
	ChallengeID uint32         `gorm:"index;not null"`
	Challenge   Challenge      `gorm:"foreignKey:ChallengeID"`
	UserID      uint32         `gorm:"index;not null"`
	TeamID      *uint32        `gorm:"index"`
	Status      InstanceStatus `gorm:"size:20;not null;default:'provisioning'"`
	StartedAt   time.Time      `gorm:"not null"`
	ExpiresAt   time.Time      `gorm:"not null"`
	EndpointURL string         `gorm:"size:255"`
	// AccessToken 创建时生成，之后不再变更，任何对外序列化都不得包含
	AccessToken     string `gorm:"size:255" json:"-"`
	OrchestratorRef string `gorm:"size:255" json:"-"`
}

func (ChallengeInstance) TableName() string {
	return "bambactf_challenge_instance"
}
