// file: controllers/ailog_controller.go
package controllers

import (
	"strconv"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
)

// AI 助手调用审计，仅管理员可访问。纯 CRUD，无业务逻辑。

func CreateAILog(c *gin.Context) {
	var req struct {
		UserID           uint32                 `json:"user_id" binding:"required"`
		TeamID           *uint32                `json:"team_id"`
		ChallengeID      *uint32                `json:"challenge_id"`
		Prompt           string                 `json:"prompt" binding:"required"`
		Response         string                 `json:"response"`
		TokensPrompt     uint                   `json:"tokens_prompt"`
		TokensCompletion uint                   `json:"tokens_completion"`
		PolicyFlags      map[string]interface{} `json:"policy_flags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	if req.PolicyFlags == nil {
		req.PolicyFlags = map[string]interface{}{}
	}

	entry := models.AIRequestLog{
		UserID:           req.UserID,
		TeamID:           req.TeamID,
		ChallengeID:      req.ChallengeID,
		Prompt:           req.Prompt,
		Response:         req.Response,
		TokensPrompt:     req.TokensPrompt,
		TokensCompletion: req.TokensCompletion,
		PolicyFlags:      req.PolicyFlags,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		utils.Error(c, 5000, "写入日志失败: "+err.Error())
		return
	}
	utils.Success(c, "AI request log created", gin.H{"id": entry.ID})
}

func ListAILogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	db := database.DB.Model(&models.AIRequestLog{})
	if uidStr := c.Query("user_id"); uidStr != "" {
		if uid, err := strconv.Atoi(uidStr); err == nil {
			db = db.Where("user_id = ?", uid)
		}
	}
	if chalStr := c.Query("challenge_id"); chalStr != "" {
		if cid, err := strconv.Atoi(chalStr); err == nil {
			db = db.Where("challenge_id = ?", cid)
		}
	}

	var total int64
	db.Count(&total)

	var logs []models.AIRequestLog
	if err := db.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&logs).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"logs":  logs,
	})
}

func GetAILogDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var entry models.AIRequestLog
	if err := database.DB.First(&entry, id).Error; err != nil {
		utils.Error(c, 4004, "日志不存在")
		return
	}
	utils.Success(c, "success", entry)
}

func DeleteAILog(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var entry models.AIRequestLog
	if err := database.DB.First(&entry, id).Error; err != nil {
		utils.Error(c, 4004, "日志不存在")
		return
	}
	database.DB.Delete(&entry)
	utils.Success(c, "AI request log deleted", nil)
}
