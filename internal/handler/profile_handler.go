package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"chirper/internal/service"
	"chirper/pkg/response"
)

type ProfileHandler struct {
	profiles service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler 实例
func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Profile 用户主页
func (h *ProfileHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	profile, err := h.profiles.GetProfile(ctx, username)
	if err != nil {
		renderFailure(c, err)
		return
	}
	render(c, response.CodeSuccess, "profile.html", "@"+profile.User.Username, gin.H{"Profile": profile})
}
