// file: controllers/team_controller_test.go
package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeamAtomicOwnerMembership(t *testing.T) {
	r := setupTestServer(t)
	user, token := createUser(t, "alice", models.RoleUser)

	w, resp := doRequest(t, r, "POST", "/api/v1/teams", token, map[string]interface{}{
		"name": "Alpha",
	})
	require.Equal(t, 200, w.Code)
	require.Equal(t, 0, resp.Code, resp.Msg)

	// 队伍与 owner 成员关系同事务创建
	assert.Equal(t, int64(1), countRows(t, &models.Team{}, ""))
	assert.Equal(t, int64(1), countRows(t, &models.TeamMembership{}, ""))

	var membership models.TeamMembership
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&membership).Error)
	assert.Equal(t, models.TeamRoleOwner, membership.Role)
}

func TestCreateTeamDuplicateName(t *testing.T) {
	r := setupTestServer(t)
	_, token1 := createUser(t, "alice", models.RoleUser)
	_, token2 := createUser(t, "bob", models.RoleUser)

	_, resp := doRequest(t, r, "POST", "/api/v1/teams", token1, map[string]interface{}{"name": "Alpha"})
	require.Equal(t, 0, resp.Code)

	_, resp = doRequest(t, r, "POST", "/api/v1/teams", token2, map[string]interface{}{"name": "Alpha"})
	assert.Equal(t, 3001, resp.Code)

	// 冲突请求不留下任何残余记录
	assert.Equal(t, int64(1), countRows(t, &models.Team{}, ""))
	assert.Equal(t, int64(1), countRows(t, &models.TeamMembership{}, ""))
}

func TestCreateTeamRequiresAuth(t *testing.T) {
	r := setupTestServer(t)

	_, resp := doRequest(t, r, "POST", "/api/v1/teams", "", map[string]interface{}{"name": "Alpha"})
	assert.Equal(t, 4001, resp.Code)
	assert.Equal(t, int64(0), countRows(t, &models.Team{}, ""))
}

func TestDeleteTeamNullifiesAttribution(t *testing.T) {
	r := setupTestServer(t)
	owner, token := createUser(t, "alice", models.RoleUser)

	team := models.Team{Name: "Alpha", OwnerID: owner.ID}
	require.NoError(t, database.DB.Create(&team).Error)
	require.NoError(t, database.DB.Create(&models.TeamMembership{
		TeamID: team.ID, UserID: owner.ID, Role: models.TeamRoleOwner, JoinedAt: time.Now(),
	}).Error)

	challenge := models.Challenge{
		Title: "C", Slug: "c", Description: "d",
		Difficulty: models.ChallengeDifficultyEasy, Points: 100,
		Flag: "flag{x}", Mode: models.ChallengeModeStatic, IsActive: true,
	}
	require.NoError(t, database.DB.Create(&challenge).Error)

	submission := models.Submission{
		ChallengeID: challenge.ID, UserID: owner.ID, TeamID: &team.ID,
		SubmittedFlag: "flag{x}", IsCorrect: true, PointsAwarded: 100,
	}
	require.NoError(t, database.DB.Create(&submission).Error)

	instance := models.ChallengeInstance{
		ChallengeID: challenge.ID, UserID: owner.ID, TeamID: &team.ID,
		Status:    models.InstanceStatusProvisioning,
		StartedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, database.DB.Create(&instance).Error)

	_, resp := doRequest(t, r, "DELETE", fmt.Sprintf("/api/v1/teams/%d", team.ID), token, nil)
	require.Equal(t, 0, resp.Code, resp.Msg)

	// 队伍与成员关系删除，提交/实例保留但归属清空
	assert.Equal(t, int64(0), countRows(t, &models.Team{}, ""))
	assert.Equal(t, int64(0), countRows(t, &models.TeamMembership{}, ""))

	var storedSubmission models.Submission
	require.NoError(t, database.DB.First(&storedSubmission, submission.ID).Error)
	assert.Nil(t, storedSubmission.TeamID)
	assert.True(t, storedSubmission.IsCorrect)
	assert.Equal(t, uint(100), storedSubmission.PointsAwarded)

	var storedInstance models.ChallengeInstance
	require.NoError(t, database.DB.First(&storedInstance, instance.ID).Error)
	assert.Nil(t, storedInstance.TeamID)
}

func TestDeleteTeamRequiresOwner(t *testing.T) {
	r := setupTestServer(t)
	owner, _ := createUser(t, "alice", models.RoleUser)
	_, intruderToken := createUser(t, "bob", models.RoleUser)

	team := models.Team{Name: "Alpha", OwnerID: owner.ID}
	require.NoError(t, database.DB.Create(&team).Error)

	_, resp := doRequest(t, r, "DELETE", fmt.Sprintf("/api/v1/teams/%d", team.ID), intruderToken, nil)
	assert.Equal(t, 4003, resp.Code)
	assert.Equal(t, int64(1), countRows(t, &models.Team{}, ""))
}

func TestAddMemberDuplicate(t *testing.T) {
	r := setupTestServer(t)
	owner, token := createUser(t, "alice", models.RoleUser)
	member, _ := createUser(t, "bob", models.RoleUser)

	team := models.Team{Name: "Alpha", OwnerID: owner.ID}
	require.NoError(t, database.DB.Create(&team).Error)

	_, resp := doRequest(t, r, "POST", fmt.Sprintf("/api/v1/teams/%d/members", team.ID), token,
		map[string]interface{}{"user_id": member.ID})
	require.Equal(t, 0, resp.Code, resp.Msg)

	// (team, user) 唯一
	_, resp = doRequest(t, r, "POST", fmt.Sprintf("/api/v1/teams/%d/members", team.ID), token,
		map[string]interface{}{"user_id": member.ID})
	assert.Equal(t, 3002, resp.Code)
	assert.Equal(t, int64(1), countRows(t, &models.TeamMembership{}, "user_id = ?", member.ID))
}
