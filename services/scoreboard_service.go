// file: services/scoreboard_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"gorm.io/gorm"
)

type ScoreboardEntry struct {
	Rank          uint       `json:"rank"`
	TeamID        uint32     `json:"team_id"`
	TeamName      string     `json:"team_name"`
	Score         uint       `json:"score"`
	LastSolveTime *time.Time `json:"last_solve_time"`
}

// GetScoreboard 按队伍聚合提交积分。score 为 points_awarded 直接求和，
// 同分按最后解题时间先者靠前。结果在 Redis 中缓存 15 秒，保证准实时。
func GetScoreboard(limit int) ([]ScoreboardEntry, error) {
	cacheKey := fmt.Sprintf("scoreboard:%d", limit)
	if val, err := database.RDB.Get(database.Ctx, cacheKey).Result(); err == nil {
		var cached []ScoreboardEntry
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached, nil
		}
	}

	type row struct {
		TeamID     uint32
		TeamName   string
		TotalScore uint
	}
	var rows []row
	err := database.DB.Table("bambactf_submission s").
		Select("s.team_id, t.name as team_name, SUM(s.points_awarded) as total_score").
		Joins("JOIN bambactf_team t ON s.team_id = t.id").
		Where("s.team_id IS NOT NULL").
		Group("s.team_id, t.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreboardEntry, 0, len(rows))
	for _, r := range rows {
		entry := ScoreboardEntry{
			TeamID:   r.TeamID,
			TeamName: r.TeamName,
			Score:    r.TotalScore,
		}

		var lastSolve models.Submission
		err := database.DB.Where("team_id = ? AND is_correct = ?", r.TeamID, true).
			Order("created_at desc").
			First(&lastSolve).Error
		if err == nil {
			entry.LastSolveTime = &lastSolve.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		a, b := entries[i].LastSolveTime, entries[j].LastSolveTime
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = uint(i + 1)
	}

	if jsonData, err := json.Marshal(entries); err == nil {
		database.RDB.Set(database.Ctx, cacheKey, jsonData, 15*time.Second)
	}

	return entries, nil
}
