package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatgenius/internal/domain"
	httpHandler "chatgenius/internal/handler/http"
	"chatgenius/internal/repository"
	"chatgenius/internal/repository/mocks"
	"chatgenius/internal/service"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, interface{}) {}

// setupRouter 用 mock 仓库组装频道和消息路由，asUser 为空时不注入身份
func setupRouter(stores *mocks.Stores, asUser string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gate := service.NewGate(stores.MemberRepo, stores.ChannelRepo)
	tx := &mocks.TxRunner{Stores: stores}
	channels := httpHandler.NewChannelHandler(service.NewChannelService(stores.ChannelRepo, tx, gate))
	messages := httpHandler.NewMessageHandler(
		service.NewMessageService(stores.MessageRepo, stores.UserRepo, gate, nopNotifier{}),
		service.NewReactionService(stores.ReactionRepo, stores.MessageRepo, gate, nopNotifier{}),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if asUser != "" {
			c.Set("user_id", asUser)
			c.Set("identity", domain.Identity{UserID: asUser, Name: "Alice"})
		}
		c.Next()
	})
	ws := r.Group("/api/workspaces/:workspaceId")
	ws.POST("/channels", channels.Create)
	ws.GET("/channels/:channelId/messages", messages.List)
	ws.POST("/channels/:channelId/messages", messages.Send)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChannelHandler_Create_InvalidBody(t *testing.T) {
	stores := mocks.NewStores()
	r := setupRouter(stores, "u-alice")

	w := doRequest(r, http.MethodPost, "/api/workspaces/ws-1/channels", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid input")
	stores.AssertAll(t)
}

func TestChannelHandler_Create_NonMemberForbidden(t *testing.T) {
	stores := mocks.NewStores()
	stores.MemberRepo.On("Find", mock.Anything, "ws-1", "u-bob").Return(nil, repository.ErrMemberNotFound).Once()
	r := setupRouter(stores, "u-bob")

	w := doRequest(r, http.MethodPost, "/api/workspaces/ws-1/channels", `{"name":"random"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())
	stores.AssertAll(t)
}

func TestChannelHandler_Create_Unauthenticated(t *testing.T) {
	stores := mocks.NewStores()
	r := setupRouter(stores, "")

	w := doRequest(r, http.MethodPost, "/api/workspaces/ws-1/channels", `{"name":"random"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMessageHandler_List_InvalidLimit(t *testing.T) {
	stores := mocks.NewStores()
	r := setupRouter(stores, "u-alice")

	w := doRequest(r, http.MethodGet, "/api/workspaces/ws-1/channels/ch-1/messages?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"limit"`)
}

func TestMessageHandler_Send(t *testing.T) {
	stores := mocks.NewStores()
	channel := &domain.Channel{ID: "ch-1", Name: "general", WorkspaceID: "ws-1"}
	stores.ChannelRepo.On("FindByID", mock.Anything, "ch-1").Return(channel, nil).Once()
	stores.ChannelRepo.On("IsMember", mock.Anything, "ch-1", "u-alice").Return(true, nil).Once()
	stores.UserRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()
	stores.MessageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Message).ID = "msg-1"
		}).Return(nil).Once()
	r := setupRouter(stores, "u-alice")

	w := doRequest(r, http.MethodPost, "/api/workspaces/ws-1/channels/ch-1/messages", `{"content":" vector<int> v "}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "msg-1", body["id"])
	assert.Equal(t, "vector<int> v", body["content"])
	stores.AssertAll(t)
}

func TestMessageHandler_Send_BlankContent(t *testing.T) {
	stores := mocks.NewStores()
	r := setupRouter(stores, "u-alice")

	w := doRequest(r, http.MethodPost, "/api/workspaces/ws-1/channels/ch-1/messages", `{"content":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"content"`)
}
