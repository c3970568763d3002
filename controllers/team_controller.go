// file: controllers/team_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTeam 创建队伍。队伍与创建者的 owner 成员关系必须同生共死，
// 放在同一事务里，任一步失败整体回滚。
func CreateTeam(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	var existingTeam models.Team
	if err := database.DB.Where("name = ?", req.Name).First(&existingTeam).Error; err == nil {
		utils.Error(c, 3001, "Team name already exists")
		return
	}

	newTeam := models.Team{
		Name:    req.Name,
		OwnerID: userID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newTeam).Error; err != nil {
			return err
		}
		ownerMembership := models.TeamMembership{
			TeamID:   newTeam.ID,
			UserID:   userID,
			Role:     models.TeamRoleOwner,
			JoinedAt: time.Now(),
		}
		return tx.Create(&ownerMembership).Error
	})
	if err != nil {
		utils.Error(c, 5000, "创建队伍失败: "+err.Error())
		return
	}

	utils.Success(c, "Team created successfully", gin.H{
		"id":       newTeam.ID,
		"name":     newTeam.Name,
		"owner_id": newTeam.OwnerID,
	})
}

func GetTeamList(c *gin.Context) {
	var teams []models.Team
	if err := database.DB.Order("name asc").Find(&teams).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", gin.H{
		"total": len(teams),
		"teams": teams,
	})
}

func GetTeamDetail(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	utils.Success(c, "success", team)
}

// GetTeamMembers 查询队伍成员列表
func GetTeamMembers(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	var memberships []models.TeamMembership
	database.DB.Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at asc, id asc").
		Find(&memberships)

	members := make([]gin.H, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, gin.H{
			"id":        m.ID,
			"user_id":   m.UserID,
			"username":  m.User.Username,
			"role":      m.Role,
			"joined_at": m.JoinedAt,
		})
	}

	utils.Success(c, "success", gin.H{
		"team_id": team.ID,
		"members": members,
	})
}

func UpdateTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	if team.OwnerID != userID {
		utils.Error(c, 4003, "权限不足，只有队长可以修改队伍信息")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	var existing models.Team
	if err := database.DB.Where("name = ? AND id <> ?", req.Name, team.ID).First(&existing).Error; err == nil {
		utils.Error(c, 3001, "Team name already exists")
		return
	}

	if err := database.DB.Model(&team).Update("name", req.Name).Error; err != nil {
		utils.Error(c, 5000, "更新队伍信息失败")
		return
	}

	utils.Success(c, "Team updated successfully", nil)
}

// DeleteTeam 解散队伍。实例/提交/AI 日志不随队伍删除，
// 只把归属退回"无队伍"；成员关系随队伍一并删除。
func DeleteTeam(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	userRole := roleAny.(models.UserRole)

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	if team.OwnerID != userID && userRole != models.RoleAdmin {
		utils.Error(c, 4003, "Permission denied: not the team owner")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ChallengeInstance{}).
			Where("team_id = ?", team.ID).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Submission{}).
			Where("team_id = ?", team.ID).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AIRequestLog{}).
			Where("team_id = ?", team.ID).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		utils.Error(c, 5000, "解散队伍失败: "+err.Error())
		return
	}

	utils.Success(c, "Team disbanded successfully", nil)
}
