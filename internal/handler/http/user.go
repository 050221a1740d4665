package http

import (
	"net/http"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 处理用户资料相关请求
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateBioRequest bio 允许为空字符串 (清空简介)
type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

// Me GET /api/user
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return
	}
	user, err := h.userService.Me(c.Request.Context(), identity)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, user)
}

// Get GET /api/users/:userId
func (h *UserHandler) Get(c *gin.Context) {
	if _, ok := CurrentUserID(c); !ok {
		return
	}
	profile, err := h.userService.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, profile)
}

// UpdateBio POST /api/users/bio
func (h *UserHandler) UpdateBio(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return
	}
	var req UpdateBioRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.userService.UpdateBio(c.Request.Context(), identity, req.Bio)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, profile)
}
