// file: controllers/scoreboard_controller.go
package controllers

import (
	"strconv"

	"github.com/IkedaLab-Daniel/BambaCTF/services"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
)

// GetScoreboard 查询排行榜（公开接口）
func GetScoreboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := services.GetScoreboard(limit)
	if err != nil {
		utils.Error(c, 5000, "查询排行榜失败")
		return
	}

	utils.Success(c, "success", entries)
}
