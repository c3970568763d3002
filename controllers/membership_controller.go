// file: controllers/membership_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
)

// AddMember 队长/管理员添加成员。(team, user) 唯一，重复加入返回冲突
func AddMember(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	actorIDAny, _ := c.Get("user_id")
	actorID := actorIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	actorRole := roleAny.(models.UserRole)

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	if team.OwnerID != actorID && actorRole != models.RoleAdmin {
		utils.Error(c, 4003, "Permission denied: not the team owner")
		return
	}

	var req struct {
		UserID uint32 `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}
	if req.Role == "" {
		req.Role = string(models.TeamRoleMember)
	}
	if req.Role != string(models.TeamRoleMember) && req.Role != string(models.TeamRoleAdmin) {
		utils.Error(c, 1001, "role 取值无效（admin/member）")
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	var existing models.TeamMembership
	if err := database.DB.Where("team_id = ? AND user_id = ?", team.ID, req.UserID).First(&existing).Error; err == nil {
		utils.Error(c, 3002, "User already in this team")
		return
	}

	membership := models.TeamMembership{
		TeamID:   team.ID,
		UserID:   req.UserID,
		Role:     models.TeamRole(req.Role),
		JoinedAt: time.Now(),
	}
	if err := database.DB.Create(&membership).Error; err != nil {
		utils.Error(c, 5000, "加入队伍失败: "+err.Error())
		return
	}

	utils.Success(c, "Member added successfully", gin.H{
		"id":      membership.ID,
		"team_id": membership.TeamID,
		"user_id": membership.UserID,
		"role":    membership.Role,
	})
}

// RemoveMember 队长移除成员 / 成员自行退出
func RemoveMember(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))
	memberUserID, _ := strconv.Atoi(c.Param("user_id"))

	actorIDAny, _ := c.Get("user_id")
	actorID := actorIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	actorRole := roleAny.(models.UserRole)

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	isSelf := uint32(memberUserID) == actorID
	if !isSelf && team.OwnerID != actorID && actorRole != models.RoleAdmin {
		utils.Error(c, 4003, "Permission denied: not the team owner")
		return
	}
	if uint32(memberUserID) == team.OwnerID {
		utils.Error(c, 3008, "Cannot remove the team owner")
		return
	}

	result := database.DB.Where("team_id = ? AND user_id = ?", teamID, memberUserID).Delete(&models.TeamMembership{})
	if result.Error != nil {
		utils.Error(c, 5000, "移除队员失败")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "Member not found in this team")
		return
	}

	utils.Success(c, "Member removed successfully", nil)
}
