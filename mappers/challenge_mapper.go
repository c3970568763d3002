// file: mappers/challenge_mapper.go
package mappers

import (
	"github.com/IkedaLab-Daniel/BambaCTF/dto"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
)

const timeLayout = "2006-01-02 15:04:05"

func MapCreateReqToChallenge(req dto.CreateChallengeReq) models.Challenge {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return models.Challenge{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Difficulty:  models.ChallengeDifficulty(req.Difficulty),
		Points:      req.Points,
		Flag:        req.Flag,
		Mode:        models.ChallengeMode(req.Mode),
		IsActive:    isActive,
	}
}

func MapChallengeToItemResp(ch models.Challenge) dto.ChallengeItemResp {
	var category *string
	if ch.Category != nil {
		category = &ch.Category.Name
	}
	return dto.ChallengeItemResp{
		ID:         ch.ID,
		Title:      ch.Title,
		Slug:       ch.Slug,
		Category:   category,
		Difficulty: string(ch.Difficulty),
		Points:     ch.Points,
		Mode:       string(ch.Mode),
		IsActive:   ch.IsActive,
	}
}

func MapChallengeToDetailResp(ch models.Challenge) dto.ChallengeDetailResp {
	var category *string
	if ch.Category != nil {
		category = &ch.Category.Name
	}
	return dto.ChallengeDetailResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Slug:        ch.Slug,
		Description: ch.Description,
		Category:    category,
		CategoryID:  ch.CategoryID,
		Difficulty:  string(ch.Difficulty),
		Points:      ch.Points,
		Mode:        string(ch.Mode),
		IsActive:    ch.IsActive,
		CreatedBy:   ch.CreatedBy,
		CreatedAt:   ch.CreatedAt.Format(timeLayout),
		UpdatedAt:   ch.UpdatedAt.Format(timeLayout),
	}
}
