package handlers

import (
	"errors"
	"net/http"
	"quotes-backend/models"
	"quotes-backend/repositories"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FavoriteHandler struct {
	Repo repositories.FavoriteRepository
}

// NewFavoriteHandler 构造函数，强制注入 Repository
func NewFavoriteHandler(repo repositories.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{Repo: repo}
}

// GetFavorites 获取当前用户的收藏列表（按收藏时间倒序）
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID := currentUserID(c)

	quotes, err := h.Repo.ListFavorites(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// AddFavorite 收藏一条名言
// 返回的是存储层的权威记录（带真实内部 ID），客户端必须用它更新本地状态
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID := currentUserID(c)

	var req models.AddFavoriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "内容和作者不能为空"})
		return
	}

	quote, err := h.Repo.AddFavorite(userID, req.ExternalID, req.Content, req.Author)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyFavorited) {
			c.JSON(409, gin.H{"error": "已经收藏过这条名言"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "收藏失败"})
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// RemoveFavorite 取消收藏，:id 是存储层的内部数字 ID，不是上游的 externalId
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID := currentUserID(c)

	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "无效的收藏ID"})
		return
	}

	if err := h.Repo.RemoveFavorite(userID, uint(quoteID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(404, gin.H{"error": "收藏不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "取消收藏失败"})
		return
	}

	c.JSON(200, gin.H{"message": "已取消收藏"})
}

// currentUserID 从中间件塞的上下文里取用户 ID
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet("current_user_id").(uuid.UUID)
}
