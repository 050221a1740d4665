package http

import (
	"net/http"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WorkspaceHandler 封装了工作区相关的 HTTP 处理逻辑
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler 创建 WorkspaceHandler 实例
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspaceRequest 定义创建工作区请求
type CreateWorkspaceRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Color    string `json:"color" binding:"omitempty,max=32"`
	ImageURL string `json:"imageUrl" binding:"omitempty,max=512"`
}

// List GET /api/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	list, err := h.workspaceService.List(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, list)
}

// Create POST /api/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return
	}
	var req CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.workspaceService.Create(c.Request.Context(), identity, req.Name, req.Color, req.ImageURL)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "workspace_id": result.Workspace.ID}).
		Info("Handler.CreateWorkspace: Workspace created successfully")
	SuccessResponse(c, http.StatusCreated, result)
}

// Get GET /api/workspaces/:workspaceId
func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	ws, err := h.workspaceService.Get(c.Request.Context(), userID, c.Param("workspaceId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, ws)
}

// Members GET /api/workspaces/:workspaceId/members
func (h *WorkspaceHandler) Members(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	members, err := h.workspaceService.Members(c.Request.Context(), userID, c.Param("workspaceId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, members)
}

// Leave POST /api/workspaces/:workspaceId/leave
func (h *WorkspaceHandler) Leave(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.Leave(c.Request.Context(), userID, c.Param("workspaceId")); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Left workspace"})
}

// InviteLink POST /api/workspaces/:workspaceId/invite-link
func (h *WorkspaceHandler) InviteLink(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	link, err := h.workspaceService.InviteLink(c.Request.Context(), userID, c.Param("workspaceId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"inviteLink": link})
}
