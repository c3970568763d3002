// file: controllers/challenge_controller_test.go
package controllers_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChallenge(t *testing.T, slug, flag string, points uint) models.Challenge {
	t.Helper()
	challenge := models.Challenge{
		Title:       "Challenge " + slug,
		Slug:        slug,
		Description: "test challenge",
		Difficulty:  models.ChallengeDifficultyEasy,
		Points:      points,
		Flag:        flag,
		Mode:        models.ChallengeModeStatic,
		IsActive:    true,
	}
	require.NoError(t, database.DB.Create(&challenge).Error)
	return challenge
}

func TestChallengeResponsesOmitFlag(t *testing.T) {
	r := setupTestServer(t)
	secret := "flag{super_secret_value_do_not_leak}"
	challenge := seedChallenge(t, "hidden-comment", secret, 100)

	// 未登录也能浏览，但任何读路径都不得出现 Flag
	w, _ := doRequest(t, r, "GET", "/api/v1/challenges", "", nil)
	require.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), secret)
	assert.NotContains(t, w.Body.String(), `"flag"`)

	w, _ = doRequest(t, r, "GET", fmt.Sprintf("/api/v1/challenges/%d", challenge.ID), "", nil)
	require.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), secret)
	assert.NotContains(t, w.Body.String(), `"flag"`)
}

func TestStartChallengeFlow(t *testing.T) {
	r := setupTestServer(t)
	_, token := createUser(t, "alice", models.RoleUser)
	challenge := seedChallenge(t, "hidden-comment", "flag{hidden_comment_intro}", 100)

	w, resp := doRequest(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/start", challenge.ID), token, nil)
	require.Equal(t, 200, w.Code)
	require.Equal(t, 0, resp.Code, resp.Msg)

	assert.Equal(t, "provisioning", resp.Data["status"])
	endpoint, _ := resp.Data["endpoint_url"].(string)
	assert.Contains(t, endpoint, "hidden-comment")

	// 访问凭证与编排器引用是内部字段，不回显
	assert.NotContains(t, w.Body.String(), "access_token")
	assert.NotContains(t, w.Body.String(), "orchestrator_ref")

	var instance models.ChallengeInstance
	require.NoError(t, database.DB.First(&instance).Error)
	assert.NotEmpty(t, instance.AccessToken)
	assert.InDelta(t, (60 * time.Minute).Seconds(), instance.ExpiresAt.Sub(instance.StartedAt).Seconds(), 1.0)
}

func TestStartChallengeInvalidTTL(t *testing.T) {
	r := setupTestServer(t)
	_, token := createUser(t, "alice", models.RoleUser)
	challenge := seedChallenge(t, "bad-ttl", "flag{x}", 100)

	_, resp := doRequest(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/start", challenge.ID), token,
		map[string]interface{}{"ttl_minutes": -1})
	assert.Equal(t, 1001, resp.Code)
	assert.Equal(t, int64(0), countRows(t, &models.ChallengeInstance{}, ""))
}

func TestSubmitFlagFlow(t *testing.T) {
	r := setupTestServer(t)
	_, tokenA := createUser(t, "alice", models.RoleUser)
	_, tokenB := createUser(t, "bob", models.RoleUser)
	challenge := seedChallenge(t, "hidden-comment", "flag{hidden_comment_intro}", 100)

	// 用户 A 提交正确 Flag
	_, resp := doRequest(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/submit", challenge.ID), tokenA,
		map[string]interface{}{"submitted_flag": "flag{hidden_comment_intro}"})
	require.Equal(t, 0, resp.Code, resp.Msg)
	assert.Equal(t, true, resp.Data["is_correct"])
	assert.Equal(t, float64(100), resp.Data["points_awarded"])

	// 用户 B 提交错误 Flag
	_, resp = doRequest(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/submit", challenge.ID), tokenB,
		map[string]interface{}{"submitted_flag": "wrong"})
	require.Equal(t, 0, resp.Code, resp.Msg)
	assert.Equal(t, false, resp.Data["is_correct"])
	assert.Equal(t, float64(0), resp.Data["points_awarded"])

	assert.Equal(t, int64(2), countRows(t, &models.Submission{}, ""))
}

func TestSubmitFlagRequiresAuth(t *testing.T) {
	r := setupTestServer(t)
	challenge := seedChallenge(t, "authed", "flag{x}", 100)

	_, resp := doRequest(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/submit", challenge.ID), "",
		map[string]interface{}{"submitted_flag": "flag{x}"})
	assert.Equal(t, 4001, resp.Code)
	assert.Equal(t, int64(0), countRows(t, &models.Submission{}, ""))
}

func TestDeleteChallengeCascades(t *testing.T) {
	r := setupTestServer(t)
	user, _ := createUser(t, "alice", models.RoleUser)
	_, adminToken := createUser(t, "root", models.RoleAdmin)
	challenge := seedChallenge(t, "doomed", "flag{x}", 100)
	other := seedChallenge(t, "survivor", "flag{y}", 100)

	for _, ch := range []models.Challenge{challenge, other} {
		require.NoError(t, database.DB.Create(&models.ChallengeInstance{
			ChallengeID: ch.ID, UserID: user.ID,
			Status:    models.InstanceStatusProvisioning,
			StartedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
		}).Error)
		require.NoError(t, database.DB.Create(&models.Submission{
			ChallengeID: ch.ID, UserID: user.ID,
			SubmittedFlag: "guess", IsCorrect: false, PointsAwarded: 0,
		}).Error)
	}

	_, resp := doRequest(t, r, "DELETE", fmt.Sprintf("/api/v1/challenges/%d", challenge.ID), adminToken, nil)
	require.Equal(t, 0, resp.Code, resp.Msg)

	// 被删题目的实例与提交级联删除，其他题目不受影响
	assert.Equal(t, int64(0), countRows(t, &models.Challenge{}, "id = ?", challenge.ID))
	assert.Equal(t, int64(0), countRows(t, &models.ChallengeInstance{}, "challenge_id = ?", challenge.ID))
	assert.Equal(t, int64(0), countRows(t, &models.Submission{}, "challenge_id = ?", challenge.ID))
	assert.Equal(t, int64(1), countRows(t, &models.ChallengeInstance{}, "challenge_id = ?", other.ID))
	assert.Equal(t, int64(1), countRows(t, &models.Submission{}, "challenge_id = ?", other.ID))
}

func TestDeleteChallengeRequiresAdmin(t *testing.T) {
	r := setupTestServer(t)
	_, token := createUser(t, "alice", models.RoleUser)
	challenge := seedChallenge(t, "protected", "flag{x}", 100)

	w, _ := doRequest(t, r, "DELETE", fmt.Sprintf("/api/v1/challenges/%d", challenge.ID), token, nil)
	assert.Equal(t, 403, w.Code)
	assert.Equal(t, int64(1), countRows(t, &models.Challenge{}, ""))
}

func TestCreateChallengeAsAdmin(t *testing.T) {
	r := setupTestServer(t)
	_, adminToken := createUser(t, "root", models.RoleAdmin)

	_, resp := doRequest(t, r, "POST", "/api/v1/challenges", adminToken, map[string]interface{}{
		"title":       "Hidden Comment",
		"description": "find the flag in the page source",
		"flag":        "flag{hidden_comment_intro}",
	})
	require.Equal(t, 0, resp.Code, resp.Msg)

	var challenge models.Challenge
	require.NoError(t, database.DB.First(&challenge).Error)
	// 默认值与 slug 推导
	assert.Equal(t, "hidden-comment", challenge.Slug)
	assert.Equal(t, models.ChallengeDifficultyEasy, challenge.Difficulty)
	assert.Equal(t, uint(100), challenge.Points)
	assert.Equal(t, models.ChallengeModeStatic, challenge.Mode)
	assert.True(t, challenge.IsActive)
	require.NotNil(t, challenge.CreatedBy)
}

func TestInstanceListOmitsToken(t *testing.T) {
	r := setupTestServer(t)
	user, token := createUser(t, "alice", models.RoleUser)
	challenge := seedChallenge(t, "tokened", "flag{x}", 100)

	secretToken := "bctf_this_must_never_leak"
	require.NoError(t, database.DB.Create(&models.ChallengeInstance{
		ChallengeID: challenge.ID, UserID: user.ID,
		Status:      models.InstanceStatusProvisioning,
		StartedAt:   time.Now(), ExpiresAt: time.Now().Add(time.Hour),
		AccessToken: secretToken,
	}).Error)

	w, resp := doRequest(t, r, "GET", "/api/v1/instances", token, nil)
	require.Equal(t, 0, resp.Code, resp.Msg)
	assert.False(t, strings.Contains(w.Body.String(), secretToken))
	assert.False(t, strings.Contains(w.Body.String(), "access_token"))
}
