package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
	"github.com/Dakshesh8090/Agri-All-round/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Crop{},
		&model.Diagnosis{},
		&model.Query{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := &model.User{
		Name:         "Test Farmer",
		Email:        "farmer@example.com",
		PasswordHash: "hash",
		Role:         model.UserRoleFarmer,
		Status:       1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newChatRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	assistantService := service.NewAssistantService(
		repository.NewUserRepository(db),
		repository.NewQueryRepository(db),
	)
	chatHandler := NewChatHandler(assistantService)

	router := gin.New()
	router.POST("/chat", chatHandler.Chat)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	router := newChatRouter(db)

	w := postJSON(t, router, "/chat", gin.H{
		"message": "How often should I water my tomato plants?",
		"userId":  user.ID,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// 应答命中灌溉规则
	assert.Contains(t, resp.Content, "Water your crops early in the morning")
	assert.NotEmpty(t, resp.Timestamp)

	// 咨询日志写入成功，响应的 ID 就是日志 ID
	var query model.Query
	require.NoError(t, db.First(&query).Error)
	assert.Equal(t, fmt.Sprintf("%d", query.ID), resp.ID)
	assert.Equal(t, resp.Content, query.ResponseText)
}

func TestChatEndpointFallback(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	router := newChatRouter(db)

	w := postJSON(t, router, "/chat", gin.H{
		"message": "hello there",
		"userId":  user.ID,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.FallbackResponse, resp.Content)
}

func TestChatEndpointValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	router := newChatRouter(db)

	// 消息缺失
	w := postJSON(t, router, "/chat", gin.H{"userId": user.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	// 用户ID缺失
	w = postJSON(t, router, "/chat", gin.H{"message": "water"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpointUnknownUser(t *testing.T) {
	db := newTestDB(t)
	router := newChatRouter(db)

	w := postJSON(t, router, "/chat", gin.H{
		"message": "water my crops",
		"userId":  9999,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
