// file: controllers/challenge_controller.go
package controllers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/dto"
	"github.com/IkedaLab-Daniel/BambaCTF/mappers"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/services"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
	slugpkg "github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CreateChallenge —— 使用 DTO + 手动映射
func CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	if req.Title == "" || req.Description == "" || req.Flag == "" {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}
	if req.Mode != "static" && req.Mode != "dynamic" {
		utils.Error(c, 1001, "mode 取值无效（static/dynamic）")
		return
	}
	if req.Difficulty != "easy" && req.Difficulty != "medium" && req.Difficulty != "hard" {
		utils.Error(c, 1001, "difficulty 取值无效（easy/medium/hard）")
		return
	}
	if req.Slug == "" {
		req.Slug = slugpkg.Make(req.Title)
	}

	if req.CategoryID != nil {
		var category models.ChallengeCategory
		if err := database.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.Error(c, 4001, "题目分类不存在")
			return
		}
	}

	var existing models.Challenge
	if err := database.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		utils.Error(c, 3001, "slug 已存在")
		return
	}

	chal := mappers.MapCreateReqToChallenge(req)
	if userIDAny, exists := c.Get("user_id"); exists {
		userID := userIDAny.(uint32)
		chal.CreatedBy = &userID
	}

	if err := database.DB.Create(&chal).Error; err != nil {
		utils.Error(c, 5000, "创建题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": chal.ID, "slug": chal.Slug})
}

// ListChallenges —— 公开的题目列表（不含 Flag）
func ListChallenges(c *gin.Context) {
	db := database.DB.Model(&models.Challenge{}).Preload("Category")

	if diff := strings.TrimSpace(c.Query("difficulty")); diff != "" {
		db = db.Where("difficulty = ?", models.ChallengeDifficulty(diff))
	}
	if catStr := c.Query("category_id"); catStr != "" {
		if cid, err := strconv.Atoi(catStr); err == nil && cid > 0 {
			db = db.Where("category_id = ?", cid)
		}
	}

	var challenges []models.Challenge
	if err := db.Order("created_at desc").Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapChallengeToItemResp(ch))
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail —— 公开的题目详情（不含 Flag）
func GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.Preload("Category").First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	utils.Success(c, "success", mappers.MapChallengeToDetailResp(challenge))
}

// UpdateChallenge —— 管理员更新题目。Flag 创建后不可修改，保证评分一致性
func UpdateChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		var category models.ChallengeCategory
		if err := database.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.Error(c, 4001, "题目分类不存在")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Difficulty != nil {
		d := strings.ToLower(*req.Difficulty)
		if d != "easy" && d != "medium" && d != "hard" {
			utils.Error(c, 1001, "difficulty 取值无效（easy/medium/hard）")
			return
		}
		updates["difficulty"] = d
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if req.Mode != nil {
		m := strings.ToLower(*req.Mode)
		if m != "static" && m != "dynamic" {
			utils.Error(c, 1001, "mode 取值无效（static/dynamic）")
			return
		}
		updates["mode"] = m
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.Success(c, "Nothing to update", nil)
		return
	}

	if err := database.DB.Model(&challenge).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "更新题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge updated successfully", nil)
}

// DeleteChallenge —— 管理员删除题目。
// 实例与提交记录离开题目没有意义，随题目一并级联删除，放在同一事务里。
func DeleteChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", challenge.ID).Delete(&models.ChallengeInstance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("challenge_id = ?", challenge.ID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		// AI 日志仅弱关联题目，解除引用即可
		if err := tx.Model(&models.AIRequestLog{}).
			Where("challenge_id = ?", challenge.ID).
			Update("challenge_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&challenge).Error
	})
	if err != nil {
		utils.Error(c, 5000, "删除题目失败: "+err.Error())
		return
	}

	utils.Success(c, "Challenge deleted successfully", nil)
}

// StartChallenge —— 申请题目实例
func StartChallenge(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.StartInstanceReq
	// body 可以为空，此时走默认 TTL；有 body 但格式错误则拒绝
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	instance, err := services.StartInstance(uint32(challengeID), userID, req.TTLMinutes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTTLNotPositive):
			utils.Error(c, 1001, "ttl_minutes 必须为正整数")
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, 4004, "题目不存在")
		default:
			utils.Error(c, 5000, "创建实例失败: "+err.Error())
		}
		return
	}

	utils.Success(c, "Instance provisioning", mappers.MapInstanceToResp(*instance))
}

// SubmitFlag —— 提交 Flag。逐字节精确比对，提交历史只增不改
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	submission, err := services.SubmitFlag(uint32(challengeID), userID, req.SubmittedFlag)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyFlag):
			utils.Error(c, 1001, "submitted_flag 不能为空")
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, 4004, "题目不存在或未开放")
		default:
			utils.Error(c, 5000, "提交失败: "+err.Error())
		}
		return
	}

	msg := "Flag 错误"
	if submission.IsCorrect {
		msg = "Flag 正确！"
	}
	utils.Success(c, msg, mappers.MapSubmissionToResp(*submission))
}
