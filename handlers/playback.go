package handlers

import (
	"errors"
	"net/http"
	"quotes-backend/models"
	"quotes-backend/services"

	"github.com/gin-gonic/gin"
)

type PlaybackHandler struct {
	Players *services.PlayerManager
}

func NewPlaybackHandler(players *services.PlayerManager) *PlaybackHandler {
	return &PlaybackHandler{Players: players}
}

// Toggle 播放开关：正在播就停；空闲就拿当前名言去合成并下发播放指令
// 合成请求还在路上时重复点击会被控制器直接忽略
func (h *PlaybackHandler) Toggle(c *gin.Context) {
	userID := currentUserID(c)

	var req models.PlaybackToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误"})
		return
	}

	controller := h.Players.Controller(userID)
	state, err := controller.Toggle(c.Request.Context(), req.Quote, req.Voice)
	if err != nil {
		if errors.Is(err, services.ErrNoQuote) {
			c.JSON(400, gin.H{"error": "当前没有可播放的名言"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "播放失败", "state": state.String()})
		return
	}

	c.JSON(200, gin.H{"state": state.String()})
}
