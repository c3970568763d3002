// file: models/team.go
package models

import (
	"time"
)

type Team struct {
	ID        uint32           `gorm:"primarykey" json:"id"`
	Name      string           `gorm:"size:120;unique;not null" json:"name"`
	OwnerID   uint32           `gorm:"not null" json:"owner_id"`
	Owner     User             `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	Members   []TeamMembership `gorm:"foreignKey:TeamID" json:"-"`
}

func (Team) TableName() string {
	return "bambactf_team"
}
