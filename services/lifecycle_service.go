// file: services/lifecycle_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/config"
	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"gorm.io/gorm"
)

var (
	ErrTTLNotPositive    = errors.New("ttl_minutes must be a positive integer")
	ErrEmptyFlag         = errors.New("submitted_flag is required")
	ErrChallengeNotFound = errors.New("challenge not found")
)

// ResolveTeam 解析用户当前行为应归属的队伍。
// 取最早加入的成员关系（joined_at, id 升序），保证多队伍时结果可复现；
// 未加入任何队伍返回 nil，不算错误。
func ResolveTeam(userID uint32) (*models.Team, error) {
	var membership models.TeamMembership
	err := database.DB.Where("user_id = ?", userID).
		Order("joined_at asc, id asc").
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var team models.Team
	if err := database.DB.First(&team, membership.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 队伍已被删除，成员关系成为悬挂引用，按无队伍处理
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// StartInstance 为 (用户, 题目) 申请一个限时实例。
// ttlMinutes 为 nil 时使用配置的默认时长；每次调用都新建记录，不做去重。
func StartInstance(challengeID uint32, userID uint32, ttlMinutes *int) (*models.ChallengeInstance, error) {
	cfg := config.Get()

	ttl := cfg.Instance.DefaultTTLMinutes
	if ttlMinutes != nil {
		ttl = *ttlMinutes
	}
	if ttl <= 0 {
		return nil, ErrTTLNotPositive
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	team, err := ResolveTeam(userID)
	if err != nil {
		return nil, err
	}
	var teamID *uint32
	if team != nil {
		teamID = &team.ID
	}

	// 静态题目 endpoint 由 slug 确定性推导；动态题目留空，等待外部编排器回填
	endpointURL := ""
	if challenge.Mode == models.ChallengeModeStatic {
		endpointURL = fmt.Sprintf("%s/challenges/%s/index.html", cfg.Instance.StaticContentBase, challenge.Slug)
	}

	now := time.Now()
	instance := models.ChallengeInstance{
		ChallengeID: challenge.ID,
		UserID:      userID,
		TeamID:      teamID,
		Status:      models.InstanceStatusProvisioning,
		StartedAt:   now,
		ExpiresAt:   now.Add(time.Duration(ttl) * time.Minute),
		EndpointURL: endpointURL,
		AccessToken: utils.GenerateAccessToken(),
	}
	if err := database.DB.Create(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// SubmitFlag 校验提交并落一条只增不改的提交记录。
// Flag 比较为逐字节精确匹配，不做任何 trim / 大小写归一化；
// 得分取提交时刻题目的分值。重复的正确提交各自独立计分。
func SubmitFlag(challengeID uint32, userID uint32, submittedFlag string) (*models.Submission, error) {
	if submittedFlag == "" {
		return nil, ErrEmptyFlag
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if !challenge.IsActive {
		return nil, ErrChallengeNotFound
	}

	team, err := ResolveTeam(userID)
	if err != nil {
		return nil, err
	}
	var teamID *uint32
	if team != nil {
		teamID = &team.ID
	}

	isCorrect := submittedFlag == challenge.Flag
	var pointsAwarded uint
	if isCorrect {
		pointsAwarded = challenge.Points
	}

	submission := models.Submission{
		ChallengeID:   challenge.ID,
		UserID:        userID,
		TeamID:        teamID,
		SubmittedFlag: submittedFlag,
		IsCorrect:     isCorrect,
		PointsAwarded: pointsAwarded,
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// TerminateInstance 显式销毁实例。provisioning/active → terminated，
// 已处于终态的实例原样返回。
func TerminateInstance(instance *models.ChallengeInstance) error {
	if instance.Status == models.InstanceStatusTerminated || instance.Status == models.InstanceStatusExpired {
		return nil
	}
	instance.Status = models.InstanceStatusTerminated
	return database.DB.Model(instance).Update("status", models.InstanceStatusTerminated).Error
}
