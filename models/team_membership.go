// file: models/team_membership.go
package models

import "time"

// 自定义队伍角色类型
type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

type TeamMembership struct {
	ID       uint32   `gorm:"primarykey" json:"id"`
	TeamID   uint32   `gorm:"uniqueIndex:unique_team_user;not null" json:"team_id"`
	UserID   uint32   `gorm:"uniqueIndex:unique_team_user;not null" json:"user_id"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Role     TeamRole `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func (TeamMembership) TableName() string {
	return "bambactf_team_membership"
}
