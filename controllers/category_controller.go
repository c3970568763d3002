// file: controllers/category_controller.go
package controllers

import (
	"strconv"
	"strings"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

// GetCategoryList 公开接口，未登录也可浏览
func GetCategoryList(c *gin.Context) {
	var categories []models.ChallengeCategory
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", gin.H{
		"total":      len(categories),
		"categories": categories,
	})
}

func GetCategoryDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.ChallengeCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Error(c, 4004, "分类不存在")
		return
	}
	utils.Success(c, "success", category)
}

// --- 管理员接口 ---

func CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}

	var existing models.ChallengeCategory
	if err := database.DB.Where("name = ? OR slug = ?", req.Name, req.Slug).First(&existing).Error; err == nil {
		utils.Error(c, 3001, "分类名称或 slug 已存在")
		return
	}

	category := models.ChallengeCategory{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		utils.Error(c, 5000, "创建分类失败: "+err.Error())
		return
	}
	utils.Success(c, "Category created successfully", gin.H{"id": category.ID})
}

func UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.ChallengeCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Error(c, 4004, "分类不存在")
		return
	}

	var req struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if len(updates) == 0 {
		utils.Success(c, "Nothing to update", nil)
		return
	}

	if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "更新分类失败: "+err.Error())
		return
	}
	utils.Success(c, "Category updated successfully", nil)
}

// DeleteCategory 删除分类，引用该分类的题目退回"无分类"
func DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.ChallengeCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Error(c, 4004, "分类不存在")
		return
	}

	if err := database.DB.Model(&models.Challenge{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		utils.Error(c, 5000, "解除题目关联失败")
		return
	}
	if err := database.DB.Delete(&category).Error; err != nil {
		utils.Error(c, 5000, "删除分类失败")
		return
	}
	utils.Success(c, "Category deleted successfully", nil)
}
