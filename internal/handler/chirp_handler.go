package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"chirper/internal/dto"
	"chirper/internal/middleware"
	"chirper/internal/service"
	"chirper/pkg/response"
)

// ============================================================================
// Handler 结构体
// ============================================================================

type ChirpHandler struct {
	chirps   service.ChirpService
	comments service.CommentService
}

// NewChirpHandler 创建 ChirpHandler 实例
func NewChirpHandler(chirps service.ChirpService, comments service.CommentService) *ChirpHandler {
	return &ChirpHandler{chirps: chirps, comments: comments}
}

// Timeline 时间线
func (h *ChirpHandler) Timeline(c *gin.Context) {
	h.renderTimeline(c, response.CodeSuccess, "")
}

// PostChirp 发布 chirp
func (h *ChirpHandler) PostChirp(c *gin.Context) {
	var req dto.PostChirpDTO
	if err := c.ShouldBind(&req); err != nil {
		response.FlashNow(c, response.FlashError, invalidFormMessage)
		h.renderTimeline(c, response.CodeBadRequest, "")
		return
	}
	draft := req.Text

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	_, err := h.chirps.PostChirp(ctx, middleware.CurrentIdentity(c), &req)
	switch {
	case err == nil:
		response.SetFlash(c, response.FlashSuccess, "Chirp posted successfully!")
		response.Redirect(c, "/timeline")
	case errors.Is(err, service.ErrValidation):
		response.FlashNow(c, response.FlashError, err.Error())
		h.renderTimeline(c, response.CodeInvalidParams, draft)
	default:
		renderFailure(c, err)
	}
}

func (h *ChirpHandler) renderTimeline(c *gin.Context, code int, draft string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	chirps, err := h.chirps.ListTimeline(ctx)
	if err != nil {
		renderFailure(c, err)
		return
	}
	render(c, code, "timeline.html", "Timeline", gin.H{
		"Chirps": chirps,
		"Draft":  draft,
	})
}

// Chirp chirp 详情及评论
func (h *ChirpHandler) Chirp(c *gin.Context) {
	chirpID, ok := parseChirpID(c)
	if !ok {
		return
	}
	h.renderChirp(c, response.CodeSuccess, chirpID)
}

// PostComment 发表评论
func (h *ChirpHandler) PostComment(c *gin.Context) {
	chirpID, ok := parseChirpID(c)
	if !ok {
		return
	}

	var req dto.PostCommentDTO
	if err := c.ShouldBind(&req); err != nil {
		response.FlashNow(c, response.FlashError, invalidFormMessage)
		h.renderChirp(c, response.CodeBadRequest, chirpID)
		return
	}
	req.ChirpID = chirpID

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	_, err := h.comments.PostComment(ctx, middleware.CurrentIdentity(c), &req)
	switch {
	case err == nil:
		response.SetFlash(c, response.FlashSuccess, "Your comment has been posted!")
		response.Redirect(c, fmt.Sprintf("/chirp/%d", chirpID))
	case errors.Is(err, service.ErrValidation):
		response.FlashNow(c, response.FlashError, err.Error())
		h.renderChirp(c, response.CodeInvalidParams, chirpID)
	default:
		renderFailure(c, err)
	}
}

func (h *ChirpHandler) renderChirp(c *gin.Context, code int, chirpID int64) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	detail, err := h.comments.GetChirpWithComments(ctx, chirpID)
	if err != nil {
		renderFailure(c, err)
		return
	}
	render(c, code, "chirp.html", "Chirp", gin.H{"Detail": detail})
}

// parseChirpID 非数字 id 直接返回 404
func parseChirpID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}
