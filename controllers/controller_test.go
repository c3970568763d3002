// file: controllers/controller_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/IkedaLab-Daniel/BambaCTF/config"
	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/IkedaLab-Daniel/BambaCTF/routes"
	"github.com/IkedaLab-Daniel/BambaCTF/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Instance.DefaultTTLMinutes = 60
	cfg.Instance.StaticContentBase = "http://localhost:8080/static"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryHours = 1
	config.SetForTesting(cfg)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ChallengeCategory{},
		&models.Challenge{},
		&models.Team{},
		&models.TeamMembership{},
		&models.ChallengeInstance{},
		&models.Submission{},
		&models.AIRequestLog{},
	))
	database.DB = db

	return routes.SetupRouter()
}

func createUser(t *testing.T, username string, role models.UserRole) (models.User, string) {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

type apiResponse struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	db := database.DB.Model(model)
	if query != "" {
		db = db.Where(query, args...)
	}
	require.NoError(t, db.Count(&count).Error)
	return count
}
