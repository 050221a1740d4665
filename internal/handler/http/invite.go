package http

import (
	"net/http"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InviteHandler 封装了工作区邀请的 HTTP 处理逻辑
type InviteHandler struct {
	inviteService *service.InviteService
}

// NewInviteHandler 创建 InviteHandler 实例
func NewInviteHandler(inviteService *service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// InviteEmailRequest 邀请相关请求都只携带邮箱，格式由服务层校验
type InviteEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *InviteHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	invites, err := h.inviteService.List(c.Request.Context(), userID, c.Param("workspaceId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, invites)
}

func (h *InviteHandler) Create(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	var req InviteEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	invite, err := h.inviteService.Create(c.Request.Context(), userID, c.Param("workspaceId"), req.Email)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, invite)
}

// Verify 只回答邀请是否可用，不暴露邀请详情
func (h *InviteHandler) Verify(c *gin.Context) {
	if _, ok := CurrentUserID(c); !ok {
		return
	}
	var req InviteEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.inviteService.Verify(c.Request.Context(), c.Param("workspaceId"), req.Email); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"valid": true})
}

func (h *InviteHandler) Accept(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return
	}
	var req InviteEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := h.inviteService.Accept(c.Request.Context(), identity, c.Param("workspaceId"), req.Email)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "workspace_id": member.WorkspaceID}).
		Info("Handler.AcceptInvite: User joined workspace")
	SuccessResponse(c, http.StatusOK, member)
}

func (h *InviteHandler) Reject(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return
	}
	var req InviteEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.inviteService.Reject(c.Request.Context(), identity, c.Param("workspaceId"), req.Email); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"success": true})
}
