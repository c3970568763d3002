// file: controllers/instance_controller.go
package controllers

import (
	"strconv"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/dto"
	"github.com/IkedaLab-Daniel/BambaCTF/mappers"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/services"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListInstances 查询自己的实例列表，管理员可带 user_id 查任意用户
func ListInstances(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	userRole := roleAny.(models.UserRole)

	targetUserID := userID
	if queryUserID := c.Query("user_id"); queryUserID != "" && userRole == models.RoleAdmin {
		if uid, err := strconv.Atoi(queryUserID); err == nil {
			targetUserID = uint32(uid)
		}
	}

	var instances []models.ChallengeInstance
	if err := database.DB.Where("user_id = ?", targetUserID).
		Order("started_at desc").
		Find(&instances).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	items := make([]dto.InstanceResp, 0, len(instances))
	for _, in := range instances {
		items = append(items, mappers.MapInstanceToResp(in))
	}

	utils.Success(c, "success", gin.H{
		"total":     len(items),
		"instances": items,
	})
}

func GetInstanceDetail(c *gin.Context) {
	instanceID, _ := strconv.Atoi(c.Param("id"))

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	userRole := roleAny.(models.UserRole)

	var instance models.ChallengeInstance
	if err := database.DB.First(&instance, instanceID).Error; err != nil {
		utils.Error(c, 4004, "实例不存在")
		return
	}

	if instance.UserID != userID && userRole != models.RoleAdmin {
		utils.Error(c, 4003, "权限不足")
		return
	}

	utils.Success(c, "success", mappers.MapInstanceToResp(instance))
}

// TerminateInstance 显式销毁实例，对已销毁的实例幂等
func TerminateInstance(c *gin.Context) {
	instanceID, _ := strconv.Atoi(c.Param("id"))

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	userRole := roleAny.(models.UserRole)

	var instance models.ChallengeInstance
	if err := database.DB.First(&instance, instanceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(c, 4004, "实例不存在")
			return
		}
		utils.Error(c, 5000, "Database error while fetching instance")
		return
	}

	if instance.UserID != userID && userRole != models.RoleAdmin {
		utils.Error(c, 4003, "Permission denied: you can only terminate your own instances")
		return
	}

	if instance.Status == models.InstanceStatusTerminated {
		utils.Success(c, "Instance already terminated", nil)
		return
	}

	if err := services.TerminateInstance(&instance); err != nil {
		utils.Error(c, 5000, "销毁实例失败: "+err.Error())
		return
	}

	utils.Success(c, "Instance terminated successfully", mappers.MapInstanceToResp(instance))
}
