// file: controllers/submission_controller.go
package controllers

import (
	"strconv"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/dto"
	"github.com/IkedaLab-Daniel/BambaCTF/mappers"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
)

// ListSubmissions 查询自己的提交记录，管理员可带 user_id / challenge_id 筛选
func ListSubmissions(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	userRole := roleAny.(models.UserRole)

	db := database.DB.Model(&models.Submission{})

	if userRole == models.RoleAdmin {
		if queryUserID := c.Query("user_id"); queryUserID != "" {
			if uid, err := strconv.Atoi(queryUserID); err == nil {
				db = db.Where("user_id = ?", uid)
			}
		}
	} else {
		db = db.Where("user_id = ?", userID)
	}
	if chalStr := c.Query("challenge_id"); chalStr != "" {
		if cid, err := strconv.Atoi(chalStr); err == nil {
			db = db.Where("challenge_id = ?", cid)
		}
	}

	var submissions []models.Submission
	if err := db.Order("created_at desc").Find(&submissions).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	items := make([]dto.SubmissionResp, 0, len(submissions))
	for _, s := range submissions {
		items = append(items, mappers.MapSubmissionToResp(s))
	}

	utils.Success(c, "success", gin.H{
		"total":       len(items),
		"submissions": items,
	})
}

func GetSubmissionDetail(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)
	roleAny, _ := c.Get("user_role")
	userRole := roleAny.(models.UserRole)

	var submission models.Submission
	if err := database.DB.First(&submission, submissionID).Error; err != nil {
		utils.Error(c, 4004, "提交记录不存在")
		return
	}

	if submission.UserID != userID && userRole != models.RoleAdmin {
		utils.Error(c, 4003, "权限不足")
		return
	}

	utils.Success(c, "success", mappers.MapSubmissionToResp(submission))
}
